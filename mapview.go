package tomldoc

import "fmt"

// Map interprets the document as nested maps: tables become
// map[string]any, arrays of tables []map[string]any and dotted keys
// nested maps. Values are decoded as by Value.Interface. Built documents
// may hold conflicting paths; those are reported as errors.
func (d *Document) Map() (map[string]any, error) {
	root := make(map[string]any)
	for _, e := range d.entries {
		switch e := e.(type) {
		case *DirectChild:
			if err := setChild(root, e); err != nil {
				return nil, err
			}
		case *Container:
			tbl, err := openContainer(root, e)
			if err != nil {
				return nil, err
			}
			for _, ch := range e.children {
				if err := setChild(tbl, ch); err != nil {
					return nil, fmt.Errorf("%w in %s", err, e.Name())
				}
			}
		}
	}
	return root, nil
}

// descend returns the table stored under name in m, creating it when
// missing. For arrays of tables the last element is used.
func descend(m map[string]any, name string, path []string) (map[string]any, error) {
	switch v := m[name].(type) {
	case nil:
		if _, ok := m[name]; !ok {
			t := make(map[string]any)
			m[name] = t
			return t, nil
		}
	case map[string]any:
		return v, nil
	case []map[string]any:
		return v[len(v)-1], nil
	}
	return nil, fmt.Errorf("tomldoc: %s is not a table", displayPath(path))
}

func openContainer(root map[string]any, c *Container) (map[string]any, error) {
	path := c.Path()
	m := root
	for i, name := range path[:len(path)-1] {
		var err error
		if m, err = descend(m, name, path[:i+1]); err != nil {
			return nil, err
		}
	}

	last := path[len(path)-1]
	existing, found := m[last]
	if c.kind == ArrayOfTables {
		t := make(map[string]any)
		switch v := existing.(type) {
		case []map[string]any:
			m[last] = append(v, t)
		default:
			if found {
				return nil, fmt.Errorf("%w: %s is not an array of tables", ErrDuplicateTable, displayPath(path))
			}
			m[last] = []map[string]any{t}
		}
		return t, nil
	}
	return descend(m, last, path)
}

func setChild(m map[string]any, c *DirectChild) error {
	path := c.Path()
	for i, name := range path[:len(path)-1] {
		var err error
		if m, err = descend(m, name, path[:i+1]); err != nil {
			return err
		}
	}
	last := path[len(path)-1]
	if _, ok := m[last]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, displayPath(path))
	}
	m[last] = c.value.Interface()
	return nil
}
