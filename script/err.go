package script

// ErrBuiltin reports a failed machine builtin.
type ErrBuiltin struct {
	Name string
	Err  error
}

func (err *ErrBuiltin) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err *ErrBuiltin) Unwrap() error {
	return err.Err
}

// ErrValue reports a value that does not fit in a byte.
type ErrValue int

func (err ErrValue) Error() string {
	return f("value %d outside 0..255", int(err))
}
