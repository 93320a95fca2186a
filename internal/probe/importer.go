package probe

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/firefly-engineering/sphinx-me/internal/logging"
	"github.com/firefly-engineering/sphinx-me/internal/system"
)

// importScript imports sys.argv[1] with the project root as the working
// directory and prints the requested attributes as a JSON object. Callables
// are invoked, bytes are decoded and iterables become lists of str. Anything
// the module prints while importing goes to stderr.
const importScript = `import importlib, json, sys
out, sys.stdout = sys.stdout, sys.stderr
mod = importlib.import_module(sys.argv[1])
attrs = {}
for name in sys.argv[2:]:
    try:
        value = getattr(mod, name)
        if callable(value):
            value = value()
        if isinstance(value, (bytes, bytearray)):
            value = value.decode("utf-8", "replace")
        if value is not None and not isinstance(value, str):
            try:
                value = [str(item) for item in value]
            except TypeError:
                value = str(value)
    except Exception:
        continue
    attrs[name] = value
sys.stdout = out
json.dump(attrs, sys.stdout)
`

// ImportLoader loads modules by importing them with a Python interpreter.
// It runs project code and is only used when explicitly enabled.
type ImportLoader struct {
	Executor system.CommandExecutor
	Python   string
}

// NewImportLoader returns an ImportLoader that runs python.
func NewImportLoader(exec system.CommandExecutor, python string) *ImportLoader {
	return &ImportLoader{Executor: exec, Python: python}
}

// Load implements Loader.
func (l *ImportLoader) Load(ctx context.Context, root, name string) (Module, error) {
	if !IsIdentifier(name) {
		return nil, fmt.Errorf("%w: %q is not an identifier", ErrNotModule, name)
	}

	args := []string{"-c", importScript, name}
	args = append(args, VersionAttrs...)
	args = append(args, AuthorAttr)

	out, err := l.Executor.Output(ctx, root, l.Python, args...)
	if err != nil {
		logging.Debug("module import failed", "module", name, "error", err)
		return nil, fmt.Errorf("%w: import %s: %v", ErrNotModule, name, err)
	}

	var attrs Attrs
	if err := json.Unmarshal(out, &attrs); err != nil {
		return nil, fmt.Errorf("%w: decode attributes of %s: %v", ErrNotModule, name, err)
	}
	return attrs, nil
}
