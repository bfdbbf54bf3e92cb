package debug

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

var (
	outMu  sync.Mutex
	logger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
)

func output() *log.Logger {
	outMu.Lock()
	defer outMu.Unlock()
	return logger
}

// SetOutput redirects both debug and error output. Tests use it to capture
// what a component reported.
func SetOutput(w io.Writer) {
	outMu.Lock()
	logger = log.New(w, "", log.Ltime|log.Lmicroseconds)
	outMu.Unlock()
}

// Error reports a recovered failure at error severity. Unlike Log it is
// active in release builds, since these are the failures a user would
// otherwise never hear about.
func Error(cat Category, format string, args ...interface{}) {
	output().Printf("ERROR [%s] %s", cat, fmt.Sprintf(format, args...))
}
