package diff

import (
	"errors"
	"testing"
)

const twoFileDiff = `diff --git a/Mathlib/Algebra/Basic.lean b/Mathlib/Algebra/Basic.lean
index 123abc..456def 100644
--- a/Mathlib/Algebra/Basic.lean
+++ b/Mathlib/Algebra/Basic.lean
@@ -1,3 +1,4 @@
 import Mathlib.Tactic
+import Mathlib.Order.Basic

 theorem one_eq_one : 1 = 1 := rfl
diff --git a/README.md b/README.md
index 789aaa..789bbb 100644
--- a/README.md
+++ b/README.md
@@ -5,2 +5,2 @@
-old line
+new line
 trailing context
`

func TestParse_MultiFile(t *testing.T) {
	files, err := Parse(twoFileDiff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].NewPath != "Mathlib/Algebra/Basic.lean" {
		t.Fatalf("unexpected path %q", files[0].NewPath)
	}
	if files[0].Kind != ChangeModified {
		t.Fatalf("unexpected kind %q", files[0].Kind)
	}
	if len(files[0].Hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(files[0].Hunks))
	}
	h := files[0].Hunks[0]
	if h.OldStart != 1 || h.OldLen != 3 || h.NewStart != 1 || h.NewLen != 4 {
		t.Fatalf("unexpected hunk ranges: %+v", h)
	}
	if files[1].Hunks[0].Lines[0].Kind != LineRemoved || files[1].Hunks[0].Lines[0].Text != "old line" {
		t.Fatalf("unexpected first line of second file: %+v", files[1].Hunks[0].Lines[0])
	}
}

func TestParse_SelfConsistency(t *testing.T) {
	files, err := Parse(twoFileDiff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, f := range files {
		for _, h := range f.Hunks {
			oldCount, newCount := 0, 0
			for _, line := range h.Lines {
				switch line.Kind {
				case LineContext:
					oldCount++
					newCount++
				case LineRemoved:
					oldCount++
				case LineAdded:
					newCount++
				}
			}
			if oldCount != h.OldLen || newCount != h.NewLen {
				t.Fatalf("hunk counts drifted: declared -%d/+%d, counted -%d/+%d",
					h.OldLen, h.NewLen, oldCount, newCount)
			}
		}
	}
}

func TestParse_EmptyDiff(t *testing.T) {
	files, err := Parse("  \n\t\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no files, got %d", len(files))
	}
}

func TestParse_OptionalHunkLengths(t *testing.T) {
	diff := `diff --git a/a.txt b/a.txt
--- a/a.txt
+++ b/a.txt
@@ -3 +3 @@
-foo
+bar
`
	files, err := Parse(diff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h := files[0].Hunks[0]
	if h.OldLen != 1 || h.NewLen != 1 {
		t.Fatalf("expected implicit lengths of 1, got %+v", h)
	}
}

func TestParse_BinaryFile(t *testing.T) {
	diff := `diff --git a/img.png b/img.png
index 111..222 100644
Binary files a/img.png and b/img.png differ
`
	files, err := Parse(diff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !files[0].Binary {
		t.Fatalf("expected binary flag")
	}
	if len(files[0].Hunks) != 0 {
		t.Fatalf("expected no hunks for binary file")
	}
}

func TestParse_RenameOnly(t *testing.T) {
	diff := `diff --git a/old/name.lean b/new/name.lean
similarity index 100%
rename from old/name.lean
rename to new/name.lean
`
	files, err := Parse(diff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := files[0]
	if f.Kind != ChangeRenamed {
		t.Fatalf("expected renamed kind, got %q", f.Kind)
	}
	if f.OldPath != "old/name.lean" || f.NewPath != "new/name.lean" {
		t.Fatalf("unexpected paths: %q -> %q", f.OldPath, f.NewPath)
	}
	if len(f.Hunks) != 0 {
		t.Fatalf("expected no hunks for rename-only entry")
	}
}

func TestParse_AddedAndDeletedKinds(t *testing.T) {
	diff := `diff --git a/new.lean b/new.lean
new file mode 100644
--- /dev/null
+++ b/new.lean
@@ -0,0 +1,1 @@
+theorem t : True := trivial
diff --git a/gone.lean b/gone.lean
deleted file mode 100644
--- a/gone.lean
+++ /dev/null
@@ -1,1 +0,0 @@
-lemma l : True := trivial
`
	files, err := Parse(diff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if files[0].Kind != ChangeAdded || files[0].OldPath != "" {
		t.Fatalf("expected added file with empty old path, got %+v", files[0])
	}
	if files[1].Kind != ChangeDeleted || files[1].NewPath != "" {
		t.Fatalf("expected deleted file with empty new path, got %+v", files[1])
	}
}

func TestParse_MalformedHunk(t *testing.T) {
	diff := `diff --git a/a.txt b/a.txt
--- a/a.txt
+++ b/a.txt
@@ -1,3 +1,3 @@
 only one line
`
	_, err := Parse(diff)
	if err == nil {
		t.Fatalf("expected error for short hunk")
	}
	var malformed *MalformedDiffError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedDiffError, got %T: %v", err, err)
	}
	if malformed.ExpectedOld != 3 || malformed.GotOld != 1 {
		t.Fatalf("unexpected counts in error: %+v", malformed)
	}
}

func TestParse_UnderDeclaredHunk(t *testing.T) {
	diff := `diff --git a/a.txt b/a.txt
--- a/a.txt
+++ b/a.txt
@@ -1,1 +1,1 @@
 context
-gone
+kept
`
	_, err := Parse(diff)
	if err == nil {
		t.Fatalf("expected error for hunk with extra body lines")
	}
	var malformed *MalformedDiffError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedDiffError, got %T: %v", err, err)
	}
	if malformed.ExpectedOld != 1 || malformed.GotOld != 2 {
		t.Fatalf("unexpected counts in error: %+v", malformed)
	}
}

func TestParse_NoNewlineMarkerIgnored(t *testing.T) {
	diff := `diff --git a/a.txt b/a.txt
--- a/a.txt
+++ b/a.txt
@@ -1,1 +1,1 @@
-foo
\ No newline at end of file
+bar
\ No newline at end of file
`
	files, err := Parse(diff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files[0].Hunks[0].Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(files[0].Hunks[0].Lines))
	}
}

func TestCollectStats(t *testing.T) {
	files, err := Parse(twoFileDiff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stats := CollectStats(files)
	if stats.FilesChanged != 2 || stats.LinesAdded != 2 || stats.LinesRemoved != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
