package spinner

// Enter starts the spinner and returns it, opening a spinner scope.
// Every Enter must be paired with an Exit.
func (s *Spinner) Enter() *Spinner {
	s.Start()
	return s
}

// Exit closes a spinner scope: it stops the animation and, when Sound is set,
// rings the terminal bell once the animation goroutine is gone.
// A disabled spinner does nothing at all.
func (s *Spinner) Exit() {
	if s.disabled {
		return
	}

	s.Stop()

	if s.sound {
		s.write(bell)
	}
}

// Do runs fn inside a spinner scope. The scope is always exited before Do
// returns or a panic from fn continues unwinding, and fn's error is returned
// as is.
func (s *Spinner) Do(fn func(*Spinner) error) error {
	defer s.Exit()
	return fn(s.Enter())
}
