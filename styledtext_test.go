package styledtext

import (
	"errors"
	"testing"

	"github.com/dshills/styledtext/attr"
	"github.com/dshills/styledtext/span"
	"github.com/dshills/styledtext/style"
	"github.com/dshills/styledtext/theme"
)

func weightResolver(t *testing.T) *style.Resolver {
	t.Helper()
	r := style.NewResolver()
	if err := r.Register("weight", style.Property("font-weight"), attr.String("normal")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return r
}

func TestApplyAndResolve(t *testing.T) {
	// Length 10, bold over [0,6), then normal over [3,10): the overlap
	// goes to the later insertion.
	at := New("0123456789", WithResolver(weightResolver(t)))

	if _, err := at.ApplyAttribute("weight", span.New(0, 6), attr.String("bold")); err != nil {
		t.Fatalf("ApplyAttribute: %v", err)
	}
	if _, err := at.ApplyAttribute("weight", span.New(3, 10), attr.String("normal")); err != nil {
		t.Fatalf("ApplyAttribute: %v", err)
	}

	styled, err := at.Runs()
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}

	if len(styled) != 2 {
		t.Fatalf("got %d styled runs, want 2: %v", len(styled), styled)
	}
	if styled[0].Span != span.New(0, 3) || styled[1].Span != span.New(3, 10) {
		t.Errorf("spans = %s, %s, want [0:3) and [3:10)", styled[0].Span, styled[1].Span)
	}
	if got, _ := styled[0].Properties.Get("font-weight"); got != "bold" {
		t.Errorf("run 0 font-weight = %v, want bold", got)
	}
	if got, _ := styled[1].Properties.Get("font-weight"); got != "normal" {
		t.Errorf("run 1 font-weight = %v, want normal", got)
	}
}

func TestEmptyText(t *testing.T) {
	at := New("", WithResolver(weightResolver(t)))

	styled, err := at.Runs()
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(styled) != 0 {
		t.Errorf("empty text produced %d runs, want 0", len(styled))
	}
}

func TestNoAssertionsGetsDefaults(t *testing.T) {
	at := New("Hello", WithResolver(weightResolver(t)))

	styled, err := at.Runs()
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(styled) != 1 {
		t.Fatalf("got %d runs, want 1", len(styled))
	}
	if styled[0].Span != span.New(0, 5) {
		t.Errorf("span = %s, want [0:5)", styled[0].Span)
	}
	if got, _ := styled[0].Properties.Get("font-weight"); got != "normal" {
		t.Errorf("font-weight = %v, want the registered default", got)
	}
}

func TestRunsCachedUntilMutation(t *testing.T) {
	at := New("0123456789", WithResolver(weightResolver(t)))
	at.ApplyAttribute("weight", span.New(0, 5), attr.String("bold"))

	first, err := at.Runs()
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	second, err := at.Runs()
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if &first[0] != &second[0] {
		t.Error("unchanged text should return the cached styled runs")
	}

	seq, _ := at.ApplyAttribute("weight", span.New(5, 10), attr.String("light"))
	third, err := at.Runs()
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(third) != 2 {
		t.Fatalf("got %d runs after mutation, want 2", len(third))
	}

	// Removing the assertion restores the earlier partition.
	if err := at.RemoveAttribute(seq); err != nil {
		t.Fatalf("RemoveAttribute: %v", err)
	}
	fourth, err := at.Runs()
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(fourth) != 2 {
		// [0,5) bold + [5,10) default still two runs
		t.Fatalf("got %d runs after removal, want 2", len(fourth))
	}
	if got, _ := fourth[1].Properties.Get("font-weight"); got != "normal" {
		t.Errorf("run 1 font-weight = %v, want normal", got)
	}
}

func TestInvalidSpanRejectedAtomically(t *testing.T) {
	at := New("héllo", WithResolver(weightResolver(t)))

	if _, err := at.ApplyAttribute("weight", span.New(0, 2), attr.String("bold")); !errors.Is(err, attr.ErrInvalidSpan) {
		t.Errorf("error = %v, want attr.ErrInvalidSpan", err)
	}

	styled, err := at.Runs()
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(styled) != 1 || len(at.AttributesAt(0)) != 0 {
		t.Error("rejected insert left state behind")
	}
}

func TestAttributesQueries(t *testing.T) {
	at := New("Hello World")
	at.ApplyAttribute("weight", span.New(0, 6), attr.String("bold"))
	at.ApplyAttribute("color", span.New(3, 11), attr.String("red"))

	if got := at.AttributesAt(4); len(got) != 2 {
		t.Errorf("AttributesAt(4) = %d assertions, want 2", len(got))
	}
	if got := at.AttributesAt(8); len(got) != 1 {
		t.Errorf("AttributesAt(8) = %d assertions, want 1", len(got))
	}
	if got := at.AttributesForRange(span.New(0, 3)); len(got) != 1 {
		t.Errorf("AttributesForRange([0:3)) = %d assertions, want 1", len(got))
	}
}

func TestDeleteAdjustsSpans(t *testing.T) {
	at := New("Hello World", WithResolver(weightResolver(t)))
	at.ApplyAttribute("weight", span.New(0, 11), attr.String("bold"))

	if err := at.Delete(span.New(5, 11)); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if at.Text() != "Hello" {
		t.Errorf("Text() = %q, want Hello", at.Text())
	}

	styled, err := at.Runs()
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(styled) != 1 {
		t.Fatalf("got %d runs, want 1", len(styled))
	}
	if styled[0].Span != span.New(0, 5) {
		t.Errorf("span = %s, want [0:5)", styled[0].Span)
	}
	if got, _ := styled[0].Properties.Get("font-weight"); got != "bold" {
		t.Errorf("font-weight = %v, want bold", got)
	}
}

func TestDeleteRemoveBehavior(t *testing.T) {
	at := New("Hello World")
	at.Store().SetEditBehavior("spell", attr.EditRemove)
	at.ApplyAttribute("spell", span.New(0, 11), attr.Bool(true))

	if err := at.Delete(span.New(5, 6)); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if at.Text() != "HelloWorld" {
		t.Errorf("Text() = %q, want HelloWorld", at.Text())
	}
	if got := at.AttributesForRange(span.New(0, 10)); len(got) != 0 {
		t.Errorf("edit-sensitive assertion survived: %v", got)
	}
}

func TestDeleteValidation(t *testing.T) {
	at := New("héllo")

	if err := at.Delete(span.New(0, 99)); !errors.Is(err, attr.ErrInvalidSpan) {
		t.Errorf("out-of-bounds error = %v, want ErrInvalidSpan", err)
	}
	if err := at.Delete(span.New(1, 2)); !errors.Is(err, attr.ErrInvalidSpan) {
		t.Errorf("mid-rune error = %v, want ErrInvalidSpan", err)
	}
	if err := at.Delete(span.New(3, 3)); err != nil {
		t.Errorf("empty deletion should be a no-op, got %v", err)
	}
	if at.Text() != "héllo" {
		t.Errorf("failed deletes changed the text to %q", at.Text())
	}
}

func TestThemeIntegration(t *testing.T) {
	th, err := theme.Parse([]byte(`
name = "test"

[[rule]]
kind = "weight"
property = "font-weight"
default = "normal"

[[rule]]
kind = "foreground"
property = "color"
type = "color"
default = "#000000"
`))
	if err != nil {
		t.Fatalf("theme.Parse: %v", err)
	}
	resolver, err := th.Resolver()
	if err != nil {
		t.Fatalf("Resolver: %v", err)
	}

	at := New("Hello World", WithResolver(resolver))
	at.ApplyAttribute("weight", span.New(0, 5), attr.String("bold"))

	styled, err := at.Runs()
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(styled) != 2 {
		t.Fatalf("got %d runs, want 2", len(styled))
	}
	if got, _ := styled[0].Properties.Get("font-weight"); got != "bold" {
		t.Errorf("run 0 font-weight = %v, want bold", got)
	}
	if _, ok := styled[0].Properties.Get("color"); !ok {
		t.Error("run 0 missing themed color default")
	}
}

func TestGraphemeOption(t *testing.T) {
	at := New("éx", WithGraphemeBoundaries())

	if _, err := at.ApplyAttribute("weight", span.New(1, 4), attr.String("bold")); !errors.Is(err, attr.ErrInvalidSpan) {
		t.Errorf("cluster-splitting span error = %v, want ErrInvalidSpan", err)
	}
	if _, err := at.ApplyAttribute("weight", span.New(0, 3), attr.String("bold")); err != nil {
		t.Errorf("cluster-aligned span rejected: %v", err)
	}
}

func TestRawRuns(t *testing.T) {
	at := New("0123456789")
	at.ApplyAttribute("weight", span.New(0, 6), attr.String("bold"))

	snap, err := at.RawRuns()
	if err != nil {
		t.Fatalf("RawRuns: %v", err)
	}
	if snap.Len() != 2 {
		t.Fatalf("got %d raw runs, want 2", snap.Len())
	}
	if snap.TextLen() != 10 {
		t.Errorf("TextLen() = %d, want 10", snap.TextLen())
	}
	r, ok := snap.RunAt(2)
	if !ok {
		t.Fatal("RunAt(2) not found")
	}
	if v, ok := r.Value("weight"); !ok || v.String() != "bold" {
		t.Errorf("RunAt(2) weight = %v, want bold", v)
	}
}
