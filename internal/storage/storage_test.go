package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileReplaceAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	f := &File{Path: path, LockTimeout: time.Second, Entity: "token"}

	if err := f.Replace([]byte(`{"a":1}`), 0600); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if err := f.Replace([]byte(`{"a":2}`), 0600); err != nil {
		t.Fatalf("Replace() overwrite error = %v", err)
	}

	data, err := f.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(data) != `{"a":2}` {
		t.Errorf("Read() = %q, want %q", data, `{"a":2}`)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if len(names) != 2 || names[0] != "token.json" || names[1] != "token.json.lock" {
		t.Errorf("directory holds %v, want token.json and token.json.lock (temp files left behind)", names)
	}
}

func TestFileReadMissing(t *testing.T) {
	f := &File{Path: filepath.Join(t.TempDir(), "token.json"), LockTimeout: time.Second, Entity: "token"}

	_, err := f.Read()
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Read() error = %v, want fs.ErrNotExist", err)
	}
	var storErr *StorageError
	if !errors.As(err, &storErr) || storErr.Op != "read" || storErr.Entity != "token" {
		t.Errorf("Read() error = %#v, want read token StorageError", err)
	}
}

func TestReplaceFileFailureLeavesTarget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token.json")
	if err := os.WriteFile(path, []byte("old"), 0600); err != nil {
		t.Fatal(err)
	}

	// A directory in the way makes the rename fail.
	blocked := filepath.Join(dir, "blocked")
	if err := os.Mkdir(blocked, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(blocked, "x"), nil, 0600); err != nil {
		t.Fatal(err)
	}
	if err := replaceFile(blocked, []byte("new"), 0600); err == nil {
		t.Fatal("replaceFile() over a non-empty directory succeeded")
	}

	data, _ := os.ReadFile(path)
	if string(data) != "old" {
		t.Errorf("unrelated file changed to %q", data)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, ".blocked-*.tmp"))
	if len(matches) != 0 {
		t.Errorf("temp files left behind: %v", matches)
	}
}

func TestLockContention(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")

	first, err := Acquire(path, time.Second)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	if _, err := Acquire(path, 50*time.Millisecond); !errors.Is(err, ErrLockTimeout) {
		t.Errorf("second Acquire() error = %v, want ErrLockTimeout", err)
	}

	f := &File{Path: path, LockTimeout: 50 * time.Millisecond, Entity: "token"}
	if err := f.Replace([]byte("x"), 0600); !errors.Is(err, ErrLockTimeout) {
		t.Errorf("Replace() under lock error = %v, want ErrLockTimeout", err)
	}

	first.Release()
	first.Release()

	second, err := Acquire(path, time.Second)
	if err != nil {
		t.Fatalf("Acquire() after Release() error = %v", err)
	}
	second.Release()
}

func TestLockFileSurvivesRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")

	first, err := Acquire(path, time.Second)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	// A waiter opens the lock file now and blocks until first is released.
	acquired := make(chan *Lock, 1)
	go func() {
		l, err := Acquire(path, 5*time.Second)
		if err != nil {
			t.Errorf("waiting Acquire() error = %v", err)
		}
		acquired <- l
	}()
	time.Sleep(50 * time.Millisecond)
	first.Release()

	if _, err := os.Stat(path + ".lock"); err != nil {
		t.Errorf("lock file after Release(): %v", err)
	}

	waiter := <-acquired
	if waiter == nil {
		t.FailNow()
	}
	defer waiter.Release()

	// A newcomer must contend with the waiter on the same lock file.
	if _, err := Acquire(path, 50*time.Millisecond); !errors.Is(err, ErrLockTimeout) {
		t.Errorf("newcomer Acquire() error = %v, want ErrLockTimeout", err)
	}
}

func TestStorageErrorUnwrap(t *testing.T) {
	err := &StorageError{Op: "read", Entity: "token", ID: "token.json", Err: ErrStorageCorrupt}
	if !errors.Is(err, ErrStorageCorrupt) {
		t.Error("errors.Is(err, ErrStorageCorrupt) = false, want true")
	}
	want := "storage: read token token.json: storage: data corruption detected"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
