package stdlib

import (
	"bufio"
	"os"
	"sync"

	"github.com/suderio/slisp/internal/eval"
	"github.com/suderio/slisp/pkg/ast"
)

// fileHandle is the concrete backing for the §6 file-I/O contract's
// opaque handle. Slisp values can't carry a Go pointer directly (the
// Expression sum type is closed), so a handle is represented as an Int
// id into this package's registry — mirroring the original's
// "FileSystem.h" scoped-handle lifecycle with Go's own idiom for
// opaque resource references.
type fileHandle struct {
	f       *os.File
	scanner *bufio.Scanner
	writer  *bufio.Writer
	write   bool
}

var (
	handleMu   sync.Mutex
	handles    = map[int64]*fileHandle{}
	nextHandle int64
)

func registerIOFns(it *eval.Interpreter) {
	register(it, "exists", ast.NewFuncDef(ast.Fixed(ast.TagStr), ast.Fixed(ast.TagBool)), func(ctx ast.EvalContext) bool {
		path, ok := asStr(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Str", ctx.Args()[0])
		}
		_, err := os.Stat(path)
		return ctx.Return(&ast.Bool{Value: err == nil})
	})

	register(it, "delete", ast.NewFuncDef(ast.Fixed(ast.TagStr), ast.Fixed(ast.TagBool)), func(ctx ast.EvalContext) bool {
		path, ok := asStr(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Str", ctx.Args()[0])
		}
		return ctx.Return(&ast.Bool{Value: os.Remove(path) == nil})
	})

	// second position is TagAny, not TagSymbol: `read`/`write` are bare
	// keyword symbols, not bound names — declaring TagSymbol would make
	// Validate's resolver look them up and fail with unknown-symbol.
	register(it, "open", ast.NewFuncDef(ast.Fixed(ast.TagStr, ast.TagAny), ast.Fixed(ast.TagInt)), func(ctx ast.EvalContext) bool {
		path, ok := asStr(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Str", ctx.Args()[0])
		}
		mode, ok := asSymbol(ctx.Args()[1])
		if !ok {
			return ctx.TypeError("Symbol", ctx.Args()[1])
		}
		var f *os.File
		var err error
		write := mode.Value == "write"
		if write {
			f, err = os.Create(path)
		} else {
			f, err = os.Open(path)
		}
		if err != nil {
			return ctx.Error(err.Error())
		}
		handleMu.Lock()
		nextHandle++
		id := nextHandle
		h := &fileHandle{f: f, write: write}
		if write {
			h.writer = bufio.NewWriter(f)
		} else {
			h.scanner = bufio.NewScanner(f)
		}
		handles[id] = h
		handleMu.Unlock()
		return ctx.Return(&ast.Int{Value: id})
	})

	register(it, "read-line", ast.NewFuncDef(ast.Fixed(ast.TagInt), ast.Fixed(ast.TagStr)), func(ctx ast.EvalContext) bool {
		id, ok := asInt(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Int", ctx.Args()[0])
		}
		h, ok := lookupHandle(id)
		if !ok {
			return ctx.Error("invalid file handle")
		}
		if h.write {
			return ctx.Error("handle is open for writing")
		}
		if !h.scanner.Scan() {
			return ctx.ReturnNil()
		}
		return ctx.Return(&ast.Str{Value: h.scanner.Text()})
	})

	register(it, "write-line", ast.NewFuncDef(ast.Fixed(ast.TagInt, ast.TagStr), ast.Fixed(ast.TagBool)), func(ctx ast.EvalContext) bool {
		id, ok := asInt(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Int", ctx.Args()[0])
		}
		line, ok := asStr(mustArg(ctx, 1))
		if !ok {
			return ctx.TypeError("Str", ctx.Args()[1])
		}
		h, ok := lookupHandle(id)
		if !ok {
			return ctx.Error("invalid file handle")
		}
		if !h.write {
			return ctx.Error("handle is open for reading")
		}
		_, err := h.writer.WriteString(line + "\n")
		if err != nil {
			return ctx.Error(err.Error())
		}
		return ctx.Return(&ast.Bool{Value: true})
	})

	register(it, "reset", ast.NewFuncDef(ast.Fixed(ast.TagInt), ast.Fixed(ast.TagBool)), func(ctx ast.EvalContext) bool {
		id, ok := asInt(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Int", ctx.Args()[0])
		}
		h, ok := lookupHandle(id)
		if !ok {
			return ctx.Error("invalid file handle")
		}
		if _, err := h.f.Seek(0, 0); err != nil {
			return ctx.Error(err.Error())
		}
		if h.write {
			h.writer = bufio.NewWriter(h.f)
		} else {
			h.scanner = bufio.NewScanner(h.f)
		}
		return ctx.Return(&ast.Bool{Value: true})
	})

	register(it, "close", ast.NewFuncDef(ast.Fixed(ast.TagInt), ast.Fixed(ast.TagBool)), func(ctx ast.EvalContext) bool {
		id, ok := asInt(mustArg(ctx, 0))
		if !ok {
			return ctx.TypeError("Int", ctx.Args()[0])
		}
		h, ok := lookupHandle(id)
		if !ok {
			return ctx.Error("invalid file handle")
		}
		if h.write {
			h.writer.Flush()
		}
		err := h.f.Close()
		handleMu.Lock()
		delete(handles, id)
		handleMu.Unlock()
		return ctx.Return(&ast.Bool{Value: err == nil})
	})
}

func lookupHandle(id int64) (*fileHandle, bool) {
	handleMu.Lock()
	defer handleMu.Unlock()
	h, ok := handles[id]
	return h, ok
}
