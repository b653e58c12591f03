/*
Package search implements spleen's recursive directory search.

🎯 Purpose:
- Walks a directory tree depth-first on its own goroutine
- Emits entries whose base name matches a shell-glob pattern, as found
- Honors Stop at directory boundaries and never follows symlinked dirs

📝 Design Philosophy:
A directory that cannot be listed is a recoverable per-node outcome, not
a failure of the scan: it is logged at debug level and skipped. Matching
is independent of recursion, so a matched directory is both emitted and
descended into. Completion is signalled by closing the match channel.
*/
package search
