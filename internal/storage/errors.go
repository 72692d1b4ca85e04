package storage

// ParseError indicates a project file that isn't a YAML task record.
type ParseError struct {
	Msg string
}

func (e ParseError) Error() string {
	return e.Msg
}
