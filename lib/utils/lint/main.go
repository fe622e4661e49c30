// Package main checks the convention of the "Must" prefixed functions of a package:
// they should be declared in file "must.go", and each of them should have a
// counterpart without the prefix that returns the error.
//
//	go run ./lib/utils/lint [dir]
package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-rod/pageobject/lib/utils"
)

func main() {
	dir := "."
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	problems, err := lint(dir)
	utils.E(err)

	for _, p := range problems {
		log.Println(p)
	}
	if len(problems) > 0 {
		os.Exit(1)
	}
}

func lint(dir string) ([]string, error) {
	log.Println("[lint] the prefix 'Must'")

	paths, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return nil, err
	}

	fs := token.NewFileSet()
	declared := map[string]bool{}
	must := map[string]token.Position{}
	problems := []string{}

	for _, p := range paths {
		if strings.HasSuffix(p, "_test.go") {
			continue
		}

		src, err := utils.ReadString(p)
		if err != nil {
			return nil, err
		}

		f, err := parser.ParseFile(fs, p, src, 0)
		if err != nil {
			return nil, err
		}

		for _, decl := range f.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok {
				continue
			}
			name := funcName(fd)
			declared[name] = true

			if !strings.HasPrefix(fd.Name.Name, "Must") {
				continue
			}
			pos := fs.Position(fd.Name.Pos())
			must[name] = pos
			if filepath.Base(p) != "must.go" {
				problems = append(problems, fmt.Sprintf("%s %s should be declared in file 'must.go'", pos, name))
			}
		}
	}

	names := make([]string, 0, len(must))
	for name := range must {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if !declared[strings.Replace(name, "Must", "", 1)] && !declared[constructorOf(name)] {
			problems = append(problems, fmt.Sprintf("%s %s has no counterpart that returns the error", must[name], name))
		}
	}

	return problems, nil
}

// funcName with the receiver type, such as "PageObject.Load"
func funcName(fd *ast.FuncDecl) string {
	if fd.Recv == nil || len(fd.Recv.List) == 0 {
		return fd.Name.Name
	}

	t := fd.Recv.List[0].Type
	if star, ok := t.(*ast.StarExpr); ok {
		t = star.X
	}
	if id, ok := t.(*ast.Ident); ok {
		return id.Name + "." + fd.Name.Name
	}
	return fd.Name.Name
}

// MustLocatorMap is the counterpart of NewLocatorMap
func constructorOf(name string) string {
	return "New" + strings.TrimPrefix(name, "Must")
}
