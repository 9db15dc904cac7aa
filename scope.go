package tomldoc

import (
	"fmt"
	"strings"
)

// defKind records how a key path came into existence while parsing.
type defKind int

const (
	undefined defKind = iota
	// implicitTable is created by a header for a longer path.
	implicitTable
	headerTable
	// dottedTable is created by a dotted key such as a.b = 1.
	dottedTable
	arrayTable
	valueDef
)

// scope tracks the key paths defined so far, so that the parser can
// reject documents that define a key twice.
type scope struct {
	defs map[string]defKind
}

func newScope() *scope {
	return &scope{defs: make(map[string]defKind)}
}

func scopeKey(path []string) string {
	return strings.Join(path, "\x00")
}

// definePrefixes creates implicit tables for the proper prefixes of path.
func (s *scope) definePrefixes(path []string) error {
	for i := 1; i < len(path); i++ {
		k := scopeKey(path[:i])
		switch s.defs[k] {
		case undefined:
			s.defs[k] = implicitTable
		case valueDef:
			return fmt.Errorf("key %s is already defined as a value", displayPath(path[:i]))
		}
	}
	return nil
}

func (s *scope) defineTable(path []string) error {
	if err := s.definePrefixes(path); err != nil {
		return err
	}
	k := scopeKey(path)
	switch s.defs[k] {
	case undefined, implicitTable:
		s.defs[k] = headerTable
		return nil
	case headerTable:
		return fmt.Errorf("table %s is already defined", displayPath(path))
	case dottedTable:
		return fmt.Errorf("table %s is already defined by dotted keys", displayPath(path))
	case arrayTable:
		return fmt.Errorf("table %s is already defined as an array of tables", displayPath(path))
	}
	return fmt.Errorf("key %s is already defined as a value", displayPath(path))
}

// defineArrayTable records a [[path]] header. Each header opens a new
// element, so the keys below path are forgotten.
func (s *scope) defineArrayTable(path []string) error {
	if err := s.definePrefixes(path); err != nil {
		return err
	}
	k := scopeKey(path)
	switch s.defs[k] {
	case undefined, arrayTable:
		s.defs[k] = arrayTable
		s.clear(k)
		return nil
	case valueDef:
		return fmt.Errorf("key %s is already defined as a value", displayPath(path))
	}
	return fmt.Errorf("array of tables %s is already defined as a table", displayPath(path))
}

// defineValue records keys = value below the table at base.
func (s *scope) defineValue(base, keys []string) error {
	full := make([]string, 0, len(base)+len(keys))
	full = append(append(full, base...), keys...)
	for i := len(base) + 1; i < len(full); i++ {
		k := scopeKey(full[:i])
		switch s.defs[k] {
		case undefined, implicitTable:
			s.defs[k] = dottedTable
		case dottedTable:
		case valueDef:
			return fmt.Errorf("key %s is already defined as a value", displayPath(full[:i]))
		default:
			return fmt.Errorf("table %s cannot be extended with dotted keys", displayPath(full[:i]))
		}
	}
	k := scopeKey(full)
	if s.defs[k] != undefined {
		return fmt.Errorf("key %s is already defined", displayPath(full))
	}
	s.defs[k] = valueDef
	return nil
}

func (s *scope) clear(k string) {
	prefix := k + "\x00"
	for key := range s.defs {
		if strings.HasPrefix(key, prefix) {
			delete(s.defs, key)
		}
	}
}

// checkEntries replays the definitions of a document's entries the way
// the parser records them. children supplies the pairs of a container.
func checkEntries(entries []Entry, children func(*Container) []*DirectChild) error {
	sc := newScope()
	for _, e := range entries {
		switch e := e.(type) {
		case *DirectChild:
			if err := sc.defineValue(nil, e.Path()); err != nil {
				return err
			}
		case *Container:
			path := e.Path()
			define := sc.defineTable
			if e.kind == ArrayOfTables {
				define = sc.defineArrayTable
			}
			if err := define(path); err != nil {
				return err
			}
			for _, ch := range children(e) {
				if err := sc.defineValue(path, ch.Path()); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
