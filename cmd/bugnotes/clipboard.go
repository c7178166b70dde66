package main

import "github.com/atotto/clipboard"

// clipboardWriteAll is swapped out in tests; headless CI has no clipboard.
var clipboardWriteAll = clipboard.WriteAll
