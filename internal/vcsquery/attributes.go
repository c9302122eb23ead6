package vcsquery

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	kerrors "github.com/gitcrypt-go/gitcrypt/internal/errors"
	"github.com/gitcrypt-go/gitcrypt/internal/procchannel"
)

// minBatchVersion is the oldest host VCS release known to support
// `check-attr --stdin -z`; older releases fall back to one query per path.
var minBatchVersion = [3]int{1, 8, 5}

// unboundValues are filter-attribute values that mean "no binding",
// per the attribute-value interpretation rules.
var unboundValues = map[string]bool{
	"":            true,
	"unspecified": true,
	"unset":       true,
	"set":         true,
}

// Binding is the key name a path's filter attribute resolves to, if any.
type Binding struct {
	Path    string
	KeyName string
	Bound   bool
}

// InterpretFilterValue maps a raw check-attr value to a binding. A value
// of "git-crypt" binds to the default key (KeyName == ""); a value of
// "git-crypt-NAME" binds to NAME; anything in unboundValues, or any other
// value, has no binding.
func InterpretFilterValue(value string) (keyName string, bound bool) {
	if unboundValues[value] {
		return "", false
	}
	if value == "git-crypt" {
		return "", true
	}
	if name, ok := strings.CutPrefix(value, "git-crypt-"); ok && name != "" {
		return name, true
	}
	return "", false
}

// ResolveBindings returns the filter binding for every path, using batch
// check-attr when the host VCS is new enough and falling back to one
// query per path otherwise.
func (r *Repository) ResolveBindings(ctx context.Context, paths []string) ([]Binding, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if supportsBatch(ctx, r.path) {
		bindings, err := r.resolveBatch(ctx, paths)
		if err == nil {
			return bindings, nil
		}
	}
	return r.resolveIndividually(ctx, paths)
}

func (r *Repository) resolveBatch(ctx context.Context, paths []string) ([]Binding, error) {
	ch, err := procchannel.Start(ctx, procchannel.Options{
		Name: "git",
		Args: []string{"check-attr", "--stdin", "-z", "filter"},
		Dir:  r.path,
	})
	if err != nil {
		return nil, err
	}

	go func() {
		for _, p := range paths {
			_, _ = ch.Write([]byte(p))
			_, _ = ch.Write([]byte{0})
		}
		_ = ch.CloseWrite()
	}()

	output, err := readAllFrom(ch)
	if err != nil {
		_ = ch.Kill()
		return nil, err
	}
	if err := ch.Wait(); err != nil {
		return nil, err
	}

	fields := bytes.Split(output, []byte{0})
	// check-attr -z emits records of (path, attr, value), each NUL
	// terminated; a trailing empty field follows the final NUL.
	if len(fields) > 0 && len(fields[len(fields)-1]) == 0 {
		fields = fields[:len(fields)-1]
	}
	if len(fields)%3 != 0 {
		return nil, kerrors.ErrHostVcsFailure
	}

	bindings := make([]Binding, 0, len(fields)/3)
	for i := 0; i < len(fields); i += 3 {
		path := string(fields[i])
		value := string(fields[i+2])
		keyName, bound := InterpretFilterValue(value)
		bindings = append(bindings, Binding{Path: path, KeyName: keyName, Bound: bound})
	}
	return bindings, nil
}

func (r *Repository) resolveIndividually(ctx context.Context, paths []string) ([]Binding, error) {
	bindings := make([]Binding, 0, len(paths))
	for _, p := range paths {
		args := append([]string{"check-attr", "filter", "--"}, p)
		out, err := procchannel.Run(ctx, procchannel.Options{Name: "git", Args: args, Dir: r.path, CaptureStderr: true}, nil)
		if err != nil {
			return nil, err
		}
		// Output format: "path: filter: value\n"
		line := strings.TrimSpace(string(out))
		parts := strings.SplitN(line, ": ", 3)
		value := "unspecified"
		if len(parts) == 3 {
			value = parts[2]
		}
		keyName, bound := InterpretFilterValue(value)
		bindings = append(bindings, Binding{Path: p, KeyName: keyName, Bound: bound})
	}
	return bindings, nil
}

func readAllFrom(ch *procchannel.Channel) ([]byte, error) {
	var buf bytes.Buffer
	tmp := make([]byte, 64*1024)
	for {
		n, err := ch.Read(tmp)
		if n > 0 {
			buf.Write(tmp[:n])
		}
		if err != nil {
			if err == io.EOF {
				return buf.Bytes(), nil
			}
			return nil, kerrors.ErrIoFailure
		}
	}
}

func supportsBatch(ctx context.Context, dir string) bool {
	out, err := procchannel.Run(ctx, procchannel.Options{Name: "git", Args: []string{"--version"}, Dir: dir}, nil)
	if err != nil {
		return false
	}
	version := parseGitVersion(string(out))
	return versionAtLeast(version, minBatchVersion)
}

func parseGitVersion(s string) [3]int {
	const prefix = "git version "
	idx := strings.Index(s, prefix)
	if idx < 0 {
		return [3]int{}
	}
	rest := strings.TrimSpace(s[idx+len(prefix):])
	parts := strings.SplitN(rest, ".", 4)
	var v [3]int
	for i := 0; i < 3 && i < len(parts); i++ {
		n, err := strconv.Atoi(strings.TrimRight(parts[i], " \t\r\n"))
		if err != nil {
			return [3]int{}
		}
		v[i] = n
	}
	return v
}

func versionAtLeast(have, want [3]int) bool {
	for i := 0; i < 3; i++ {
		if have[i] != want[i] {
			return have[i] > want[i]
		}
	}
	return true
}

// FilterNameFor returns the .gitattributes filter value for keyName: the
// bare "git-crypt" for the default key, "git-crypt-NAME" otherwise.
func FilterNameFor(keyName string) string {
	if keyName == "" {
		return "git-crypt"
	}
	return fmt.Sprintf("git-crypt-%s", keyName)
}
