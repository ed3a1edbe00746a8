package catalog

// Selection is the user's current pick on each axis. An empty string means
// the axis is not selected. It is a plain value so callers can hold it in a
// session, a request body, or a test without any shared state.
type Selection struct {
	Size  string `json:"size"`
	Grade string `json:"grade"`
}

func (s Selection) Complete() bool {
	return s.Size != "" && s.Grade != ""
}

// ToggleSize returns the selection after clicking a size: picking it when it
// differs from the current one, clearing it when it is the same value again.
func (s Selection) ToggleSize(size string) Selection {
	if s.Size == size {
		s.Size = ""
	} else {
		s.Size = size
	}
	return s
}

// ToggleGrade mirrors ToggleSize for the grade axis.
func (s Selection) ToggleGrade(grade string) Selection {
	if s.Grade == grade {
		s.Grade = ""
	} else {
		s.Grade = grade
	}
	return s
}
