package edit

// command captures one structural change as three explicit steps: an
// optimistic forward update of the rendered grid, the host call, and the
// rollback that restores the pre-operation view when the call fails.
type command struct {
	forward  func()
	call     func() error
	rollback func()
}

// run executes the command under the mutation queue: one structural
// operation is in flight at a time, later callers wait their turn.
func (c *Coordinator) run(cmd command) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cmd.forward != nil {
		cmd.forward()
	}
	if err := cmd.call(); err != nil {
		if cmd.rollback != nil {
			cmd.rollback()
		}
		return err
	}
	return nil
}
