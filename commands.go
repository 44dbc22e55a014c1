package nphase

// Command is a deferred mutation of host state.
type Command func()

// Commands buffers deferred mutations.
//
// Each worker owns its own buffer. Buffers are merged in chunk order once all workers
// are done and applied by the host between stages.
type Commands struct {
	queue []Command
}

// Queue appends cmd. Nil commands are ignored.
func (c *Commands) Queue(cmd Command) {
	if cmd == nil {
		return
	}
	c.queue = append(c.queue, cmd)
}

func (c *Commands) Len() int {
	return len(c.queue)
}

// Append moves every command of other to the end of c.
func (c *Commands) Append(other *Commands) {
	c.queue = append(c.queue, other.queue...)
	other.queue = nil
}

// Apply runs and clears the queued commands in order.
func (c *Commands) Apply() {
	for _, cmd := range c.Drain() {
		cmd()
	}
}

// Drain removes and returns the queued commands.
func (c *Commands) Drain() []Command {
	queue := c.queue
	c.queue = nil
	return queue
}

// chunkOutput is the private outbox of one worker.
type chunkOutput struct {
	contacts    []*Contacts
	constraints []ContactConstraint
	wakeUps     []Entity
	commands    Commands
	skipped     int
}
