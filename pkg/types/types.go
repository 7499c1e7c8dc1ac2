// Package types defines the core types shared across dotdeploy.
package types

import (
	"io/fs"
)

// FS abstracts filesystem access so installers can run against the
// real filesystem or a test double.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
	Remove(name string) error
	Rename(oldpath, newpath string) error
	ReadDir(name string) ([]fs.DirEntry, error)
}

// EntryKind classifies a top-level source entry
type EntryKind string

const (
	// KindPlain is a file or ordinary directory linked as one unit
	KindPlain EntryKind = "plain"

	// KindLinkEach is a directory whose children are linked individually,
	// signaled by a marker file inside it
	KindLinkEach EntryKind = "link-each"

	// KindSkipped is an entry excluded by the skip-list or reserved names
	KindSkipped EntryKind = "skipped"
)

// Entry is a classified child of the source directory
type Entry struct {
	// Name is the basename of the entry
	Name string

	// Path is the absolute path of the entry inside the source tree
	Path string

	// Kind is the classification driving how the entry is deployed
	Kind EntryKind
}

// OperationType identifies a planned filesystem mutation
type OperationType string

const (
	// OperationCreateDir ensures a directory exists at Target
	OperationCreateDir OperationType = "create_dir"

	// OperationCreateSymlink links Target to Source via the link primitive
	OperationCreateSymlink OperationType = "create_symlink"
)

// Operation is a single planned mutation of the destination tree
type Operation struct {
	Type        OperationType
	Source      string
	Target      string
	Description string
}

// ResultAction describes what actually happened when an operation was applied
type ResultAction string

const (
	ActionLinked    ResultAction = "linked"     // fresh symlink created
	ActionRelinked  ResultAction = "relinked"   // existing symlink replaced
	ActionBackedUp  ResultAction = "backed-up"  // non-link renamed aside, then linked
	ActionDirMade   ResultAction = "dir-made"   // directory created
	ActionDirExists ResultAction = "dir-exists" // directory already present
	ActionSeeded    ResultAction = "seeded"     // seed file copied
	ActionSeedKept  ResultAction = "seed-kept"  // destination already exists, seed skipped
	ActionPlanned   ResultAction = "planned"    // dry-run, nothing executed
)

// Result records the outcome of applying one operation
type Result struct {
	Operation Operation

	Action ResultAction

	// BackupPath is set when a pre-existing non-link file was renamed aside
	BackupPath string
}

// InstallResult aggregates a full installer run
type InstallResult struct {
	Entries []Entry
	Results []Result
	DryRun  bool
}
