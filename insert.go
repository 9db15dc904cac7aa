package tomldoc

// InsertString inserts key = "s" as a top-level child at index i.
func (d *Document) InsertString(i int, key, s string) (*DirectChild, error) {
	return d.InsertChild(i, key, NewString(s))
}

// InsertInteger inserts key = n as a top-level child at index i.
func (d *Document) InsertInteger(i int, key string, n int64) (*DirectChild, error) {
	return d.InsertChild(i, key, NewInteger(n))
}

// InsertFloat inserts key = f as a top-level child at index i.
func (d *Document) InsertFloat(i int, key string, f float64) (*DirectChild, error) {
	return d.InsertChild(i, key, NewFloat(f))
}

// InsertBoolean inserts key = b as a top-level child at index i.
func (d *Document) InsertBoolean(i int, key string, b bool) (*DirectChild, error) {
	return d.InsertChild(i, key, NewBoolean(b))
}

// InsertDatetime inserts key = dt as a top-level child at index i.
func (d *Document) InsertDatetime(i int, key string, dt Datetime) (*DirectChild, error) {
	return d.InsertChild(i, key, NewDatetime(dt))
}

// InsertArray inserts key = [values...] as a top-level child at index i.
func (d *Document) InsertArray(i int, key string, values ...Value) (*DirectChild, error) {
	arr, err := NewArray(values...)
	if err != nil {
		return nil, err
	}
	c, err := d.InsertChild(i, key, arr)
	if err != nil {
		arr.release()
	}
	return c, err
}

// InsertInlineTable inserts key = {} as a top-level child at index i.
func (d *Document) InsertInlineTable(i int, key string) (*DirectChild, error) {
	return d.InsertChild(i, key, NewInlineTable())
}

func (c *Container) InsertString(i int, key, s string) (*DirectChild, error) {
	return c.InsertChild(i, key, NewString(s))
}

func (c *Container) InsertInteger(i int, key string, n int64) (*DirectChild, error) {
	return c.InsertChild(i, key, NewInteger(n))
}

func (c *Container) InsertFloat(i int, key string, f float64) (*DirectChild, error) {
	return c.InsertChild(i, key, NewFloat(f))
}

func (c *Container) InsertBoolean(i int, key string, b bool) (*DirectChild, error) {
	return c.InsertChild(i, key, NewBoolean(b))
}

func (c *Container) InsertDatetime(i int, key string, dt Datetime) (*DirectChild, error) {
	return c.InsertChild(i, key, NewDatetime(dt))
}

func (c *Container) InsertArray(i int, key string, values ...Value) (*DirectChild, error) {
	arr, err := NewArray(values...)
	if err != nil {
		return nil, err
	}
	ch, err := c.InsertChild(i, key, arr)
	if err != nil {
		arr.release()
	}
	return ch, err
}

func (c *Container) InsertInlineTable(i int, key string) (*DirectChild, error) {
	return c.InsertChild(i, key, NewInlineTable())
}
