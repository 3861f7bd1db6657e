package planner

import (
	"fmt"
	"path"
	"strings"
)

// Store is the folder surface of the content store the planner works on.
type Store interface {
	FolderExists(p string) bool
	CreateFolder(parent, name string) error
	SubFolders(p string) []string
	ListFolders(root string) []string
	ItemsIn(folder string) []string
	DeleteFolder(p string) error
}

// Logger is the logging surface the planner uses.
type Logger interface {
	Warn(format string, args ...interface{})
	Debug(verbose bool, format string, args ...interface{})
}

// Planner creates canonical folders on demand and reclaims empty ones once
// relocation is over.
type Planner struct {
	store   Store
	log     Logger
	verbose bool
	Layout  Layout

	created int
}

// New returns a planner for layout backed by store.
func New(store Store, layout Layout, log Logger, verbose bool) *Planner {
	return &Planner{store: store, log: log, verbose: verbose, Layout: layout}
}

// Ensure creates dir and any missing ancestors, parents first. Folders are
// only ever created here, so empty canonical folders appear only when
// something is moved into them.
func (p *Planner) Ensure(dir string) error {
	dir = path.Clean(dir)
	var missing []string
	for d := dir; d != "." && d != "/" && !p.store.FolderExists(d); d = path.Dir(d) {
		missing = append(missing, d)
	}
	for i := len(missing) - 1; i >= 0; i-- {
		d := missing[i]
		if err := p.store.CreateFolder(path.Dir(d), path.Base(d)); err != nil {
			return fmt.Errorf("create %s: %w", d, err)
		}
		p.created++
		p.log.Debug(p.verbose, "Created folder %s", d)
	}
	return nil
}

// Created returns how many folders Ensure has created.
func (p *Planner) Created() int { return p.created }

// IsProtected reports whether dir is one of the layout's canonical folders.
func (p *Planner) IsProtected(dir string) bool {
	for _, prot := range p.Layout.Protected() {
		if strings.EqualFold(prot, dir) {
			return true
		}
	}
	return false
}
