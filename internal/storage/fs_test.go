package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestFS(t *testing.T) (*FS, string) {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return fs, dir
}

func TestNewFS_MissingRoot(t *testing.T) {
	if _, err := NewFS(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("missing root must be rejected")
	}
}

func TestWriteReadDelete(t *testing.T) {
	fs, _ := newTestFS(t)

	content := []byte("name: BD-2 Blues Driver\n")
	if err := fs.Write("gear/boss-bd-2.yaml", content); err != nil {
		t.Fatal(err)
	}

	got, err := fs.Read("gear/boss-bd-2.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Errorf("read back %q", got)
	}

	exists, err := fs.Exists("gear/boss-bd-2.yaml")
	if err != nil || !exists {
		t.Errorf("Exists = %v, %v", exists, err)
	}

	if err := fs.Delete("gear/boss-bd-2.yaml"); err != nil {
		t.Fatal(err)
	}
	exists, err = fs.Exists("gear/boss-bd-2.yaml")
	if err != nil || exists {
		t.Errorf("Exists after delete = %v, %v", exists, err)
	}
}

func TestWrite_LeavesNoTempFiles(t *testing.T) {
	fs, dir := newTestFS(t)

	if err := fs.Write("gear/a.yaml", []byte("x\n")); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(filepath.Join(dir, "gear"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "a.yaml" {
		t.Errorf("unexpected directory contents: %v", entries)
	}
}

func TestList(t *testing.T) {
	fs, _ := newTestFS(t)

	for _, name := range []string{"gear/b.yaml", "gear/a.yaml", "gear/notes.txt"} {
		if err := fs.Write(name, []byte("x\n")); err != nil {
			t.Fatal(err)
		}
	}
	// Subdirectories are not listed.
	if err := fs.Write("gear/archived/c.yaml", []byte("x\n")); err != nil {
		t.Fatal(err)
	}

	names, err := fs.List("gear", ".yaml")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(names, []string{"a.yaml", "b.yaml"}) {
		t.Errorf("List = %v", names)
	}
}

func TestList_MissingDir(t *testing.T) {
	fs, _ := newTestFS(t)

	names, err := fs.List("gear", ".yaml")
	if err != nil {
		t.Fatalf("missing dir must not error: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("List = %v", names)
	}
}

func TestMove(t *testing.T) {
	fs, _ := newTestFS(t)

	if err := fs.Write("gear/a.yaml", []byte("content\n")); err != nil {
		t.Fatal(err)
	}
	if err := fs.Move("gear/a.yaml", "gear/archived/a.yaml"); err != nil {
		t.Fatal(err)
	}

	if exists, _ := fs.Exists("gear/a.yaml"); exists {
		t.Error("source still present after move")
	}
	got, err := fs.Read("gear/archived/a.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "content\n" {
		t.Errorf("moved content = %q", got)
	}
}

func TestSafePath_RejectsTraversal(t *testing.T) {
	fs, _ := newTestFS(t)

	for _, p := range []string{"../outside.yaml", "gear/../../outside.yaml", "/etc/passwd"} {
		if _, err := fs.Read(p); err == nil {
			t.Errorf("path %q must be rejected", p)
		}
		if err := fs.Write(p, []byte("x")); err == nil {
			t.Errorf("write to %q must be rejected", p)
		}
	}
}
