/*
Package fsops implements the background file-operation engine of spleen.

	+-----------+        +-----------+
	|  Engine   |------->|  Handle   |
	| (Submit)  |        | (observe) |
	+-----+-----+        +-----+-----+
	      |                    |
	+-----+-----+        Progress / Done
	|  worker   |------------->+
	| goroutine |
	+-----------+

🎯 Purpose:
- Executes batches of copy, move, delete and extract operations
- Streams per-item progress back to the caller over channels
- Collects per-item errors without aborting the batch

🔄 Flow:
1. Submit validates the request synchronously
2. A worker goroutine processes sources strictly in order
3. One Progress event is emitted per processed item
4. Exactly one Result is delivered on the Done channel

⚡ Key Responsibilities:
- Symlink-preserving recursive copy
- Atomic rename with cross-volume copy+delete fallback
- Zip/tar.gz extraction with path-traversal rejection
- Cooperative cancellation at item boundaries

📝 Design Philosophy:
Each submitted batch owns its handle, its cancellation flag and its
channels. Nothing is shared between concurrent batches, so independent
handles never interfere. In-flight single-item work is never interrupted
mid-copy; cancellation takes effect at the next item boundary.
*/
package fsops
