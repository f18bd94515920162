package fins

// Ping is a read-only health probe: it round-trips ReadClock and
// discards the result. A caller polling liveness can use this instead
// of a real read/write against live process memory.
func (c *Client) Ping() error {
	_, err := c.ReadClock()
	return err
}
