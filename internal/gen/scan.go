// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package gen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/sync/errgroup"
)

// Scan walks the given directories, parses every Go source file and
// collects string literals passed to the named interning function. fn is
// either a selector like "intern.Intern" or a bare identifier like
// "Intern". Files are parsed concurrently; results are deduplicated and
// returned as symbols named after their values.
//
// Only direct string literals are collected. A non-literal argument is not
// an error: it simply cannot be precomputed.
func Scan(dirs []string, fn string) ([]Symbol, error) {
	files, err := goFiles(dirs)
	if err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		values = map[string]struct{}{}
	)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, path := range files {
		path := path
		g.Go(func() error {
			found, err := scanFile(path, fn)
			if err != nil {
				return err
			}
			mu.Lock()
			for _, v := range found {
				values[v] = struct{}{}
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return nameValues(values)
}

func goFiles(dirs []string) ([]string, error) {
	var files []string
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				// Skip hidden, underscore and vendor trees, same as the go
				// tool does.
				if path != dir && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor") {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, ".go") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", dir, err)
		}
	}
	return files, nil
}

func scanFile(path, fn string) ([]string, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, nil, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	pkg, name, _ := strings.Cut(fn, ".")
	if name == "" {
		pkg, name = "", pkg
	}

	var found []string
	ast.Inspect(f, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok || len(call.Args) != 1 {
			return true
		}
		if !callMatches(call.Fun, pkg, name) {
			return true
		}
		lit, ok := call.Args[0].(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			return true
		}
		v, err := strconv.Unquote(lit.Value)
		if err != nil {
			return true
		}
		found = append(found, v)
		return true
	})
	return found, nil
}

func callMatches(fun ast.Expr, pkg, name string) bool {
	switch f := fun.(type) {
	case *ast.Ident:
		return pkg == "" && f.Name == name
	case *ast.SelectorExpr:
		if pkg == "" || f.Sel.Name != name {
			return false
		}
		id, ok := f.X.(*ast.Ident)
		return ok && id.Name == pkg
	}
	return false
}

// nameValues derives deterministic exported identifiers from the collected
// string values.
func nameValues(values map[string]struct{}) ([]Symbol, error) {
	sorted := make([]string, 0, len(values))
	for v := range values {
		sorted = append(sorted, v)
	}
	sort.Strings(sorted)

	taken := map[string]struct{}{}
	syms := make([]Symbol, 0, len(sorted))
	for _, v := range sorted {
		name := mangle(v)
		// Distinct values can mangle to the same identifier ("a-b" and
		// "a_b"); disambiguate with a numeric suffix.
		if _, dup := taken[name]; dup {
			for i := 2; ; i++ {
				cand := fmt.Sprintf("%s%d", name, i)
				if _, dup := taken[cand]; !dup {
					name = cand
					break
				}
			}
		}
		taken[name] = struct{}{}
		syms = append(syms, Symbol{Name: name, Value: v})
	}
	return syms, nil
}

// mangle turns an arbitrary string into an exported Go identifier:
// "content-type" becomes "ContentType". Non-identifier runes act as word
// breaks and are dropped.
func mangle(s string) string {
	var b strings.Builder
	upper := true
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			if upper {
				r = unicode.ToUpper(r)
				upper = false
			}
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if b.Len() == 0 {
				b.WriteByte('N')
			}
			b.WriteRune(r)
			upper = true
		default:
			upper = true
		}
	}
	if b.Len() == 0 {
		return "Empty"
	}
	return b.String()
}
