package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/KimNorgaard/go-tomldoc"
	"github.com/KimNorgaard/go-tomldoc/internal/textdiff"
	"github.com/goccy/go-yaml"
)

// CheckCmd parses files and verifies that printing reproduces them.
type CheckCmd struct {
	Files []string `arg:"" help:"TOML files to check" type:"existingfile"`
}

func (c *CheckCmd) Run(env *Env) error {
	failed := 0
	for _, name := range c.Files {
		if !checkFile(env, name) {
			failed++
		}
	}
	if failed > 0 {
		env.Paint.errorf("%d of %d file(s) failed", failed, len(c.Files))
		return errReported
	}
	return nil
}

func checkFile(env *Env, name string) bool {
	src, err := os.ReadFile(name)
	if err != nil {
		env.Paint.errorf("%s: %s", name, err)
		return false
	}
	doc, err := tomldoc.Parse(src)
	if err != nil {
		var se *tomldoc.SyntaxError
		if errors.As(err, &se) {
			env.Paint.syntax(name, src, se)
		} else {
			env.Paint.errorf("%s: %s", name, err)
		}
		return false
	}
	env.Log.Debug("parsed", "file", name, "entries", doc.Len(), "bytes", len(src))

	if out := doc.String(); out != string(src) {
		off := textdiff.FirstDifference(string(src), out)
		env.Paint.errorf("%s: printing changed the document at offset %d", name, off)
		fmt.Fprint(env.Stderr, textdiff.Unified(string(src), out, 2))
		return false
	}
	env.Paint.okf("%s: ok", name)
	return true
}

// LsCmd lists the entries of a file with their unified index.
type LsCmd struct {
	File string `arg:"" help:"TOML file" type:"existingfile"`
}

func (c *LsCmd) Run(env *Env) error {
	doc, err := load(env, c.File)
	if err != nil {
		return err
	}
	for i, e := range doc.Entries() {
		switch e := e.(type) {
		case *tomldoc.DirectChild:
			fmt.Fprintf(env.Stdout, "%d\t%s = %s\n", i, e.Name(), e.Value().Raw())
		case *tomldoc.Container:
			fmt.Fprintf(env.Stdout, "%d\t%s\n", i, header(e))
			for _, ch := range e.Children() {
				fmt.Fprintf(env.Stdout, "\t  %s = %s\n", ch.Name(), ch.Value().Raw())
			}
		}
	}
	return nil
}

func header(c *tomldoc.Container) string {
	if c.Kind() == tomldoc.ArrayOfTables {
		return "[[" + c.Name() + "]]"
	}
	return "[" + c.Name() + "]"
}

// GetCmd prints the raw text of the value at a dotted key.
type GetCmd struct {
	File string `arg:"" help:"TOML file" type:"existingfile"`
	Key  string `arg:"" help:"Dotted key, for example server.port"`
}

func (c *GetCmd) Run(env *Env) error {
	doc, err := load(env, c.File)
	if err != nil {
		return err
	}
	path, err := parsePath(c.Key)
	if err != nil {
		return err
	}
	child, ok := doc.FindChild(path...)
	if !ok {
		return fmt.Errorf("key %s not found", c.Key)
	}
	fmt.Fprintln(env.Stdout, child.Value().Raw())
	return nil
}

// RmCmd removes an entry by its index in the listing of ls.
type RmCmd struct {
	File       string `arg:"" help:"TOML file" type:"existingfile"`
	Index      int    `arg:"" help:"Entry index as printed by ls"`
	KeepTrivia bool   `help:"Keep the comments around the removed entry"`
	Write      bool   `short:"w" help:"Write the result back to the file"`
}

func (c *RmCmd) Run(env *Env) error {
	doc, err := load(env, c.File)
	if err != nil {
		return err
	}
	if c.KeepTrivia {
		err = doc.RemovePreserveTrivia(c.Index)
	} else {
		err = doc.Remove(c.Index)
	}
	if err != nil {
		return err
	}
	env.Log.Debug("removed entry", "index", c.Index, "keep-trivia", c.KeepTrivia)
	return emit(env, c.File, doc, c.Write)
}

// AddCmd adds a key/value pair. The value is written as TOML, so strings
// need their quotes.
type AddCmd struct {
	File  string `arg:"" help:"TOML file" type:"existingfile"`
	Key   string `arg:"" help:"Dotted key"`
	Value string `arg:"" help:"TOML value, for example '\"text\"' or '[1, 2]'"`
	Table string `help:"Add to the table with this header path instead of the top level"`
	Write bool   `short:"w" help:"Write the result back to the file"`
}

func (c *AddCmd) Run(env *Env) error {
	doc, err := load(env, c.File)
	if err != nil {
		return err
	}

	// The pair is parsed on its own so the key and value follow TOML syntax.
	pair, err := tomldoc.ParseString(c.Key + " = " + c.Value)
	if err != nil {
		return fmt.Errorf("invalid key or value: %w", err)
	}
	if pair.Len() != 1 || pair.LenChildren() != 1 {
		return fmt.Errorf("invalid key or value: expected a single pair")
	}
	child, _ := pair.Child(0)
	if err := pair.Remove(0); err != nil {
		return err
	}

	if c.Table == "" {
		_, err = doc.InsertDottedChild(doc.LenChildren(), child.Path(), child.Value())
	} else {
		var path []string
		if path, err = parsePath(c.Table); err != nil {
			return err
		}
		container, ok := doc.FindContainer(path...)
		if !ok {
			return fmt.Errorf("table %s not found", c.Table)
		}
		_, err = container.InsertDottedChild(container.Len(), child.Path(), child.Value())
	}
	if err != nil {
		return err
	}
	env.Log.Debug("added pair", "key", child.Name(), "table", c.Table)
	return emit(env, c.File, doc, c.Write)
}

// DumpCmd prints the plain data of a file as YAML.
type DumpCmd struct {
	File string `arg:"" help:"TOML file" type:"existingfile"`
}

func (c *DumpCmd) Run(env *Env) error {
	doc, err := load(env, c.File)
	if err != nil {
		return err
	}
	m, err := doc.Map()
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(plain(m))
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(out)
	return err
}

// plain replaces datetimes by their TOML text so the YAML encoder sees
// only scalars, slices and maps.
func plain(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, e := range v {
			v[k] = plain(e)
		}
		return v
	case []any:
		for i, e := range v {
			v[i] = plain(e)
		}
		return v
	case []map[string]any:
		for _, e := range v {
			plain(e)
		}
		return v
	case tomldoc.Datetime:
		return v.String()
	}
	return v
}

type VersionCmd struct{}

func (c *VersionCmd) Run(env *Env) error {
	fmt.Fprintf(env.Stdout, "tomldoc version %s\n", version)
	return nil
}

// load reads and parses a file, printing a diagnostic on syntax errors.
func load(env *Env, name string) (*tomldoc.Document, error) {
	src, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	doc, err := tomldoc.Parse(src)
	if err != nil {
		var se *tomldoc.SyntaxError
		if errors.As(err, &se) {
			env.Paint.syntax(name, src, se)
			return nil, errReported
		}
		return nil, err
	}
	env.Log.Debug("parsed", "file", name, "entries", doc.Len())
	return doc, nil
}

// emit prints the document, or writes it back to name when write is set.
func emit(env *Env, name string, doc *tomldoc.Document, write bool) error {
	if !write {
		_, err := doc.WriteTo(env.Stdout)
		return err
	}
	info, err := os.Stat(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(name, doc.Bytes(), info.Mode().Perm()); err != nil {
		return err
	}
	env.Log.Info("wrote file", "file", name, "bytes", len(doc.Bytes()))
	return nil
}

// parsePath splits a dotted key such as a."b.c".d into its segments
// using the header syntax of the parser.
func parsePath(key string) ([]string, error) {
	doc, err := tomldoc.ParseString("[" + key + "]")
	if err != nil {
		return nil, fmt.Errorf("invalid key %q: %w", key, err)
	}
	c, err := doc.Container(0)
	if err != nil {
		return nil, fmt.Errorf("invalid key %q", key)
	}
	return c.Path(), nil
}
