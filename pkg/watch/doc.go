/*
Package watch bridges filesystem change events to debounced refresh
signals.

🎯 Purpose:
- Watches a directory subtree recursively via fsnotify
- Coalesces event bursts into one notification per quiet period
- Keeps each subscription fully independent of every other

🔄 Flow:
1. Directory establishes watches on the root and every subdirectory
2. Every event re-arms a 300 ms trailing-edge debouncer
3. One value lands on Changed once the burst goes quiet
4. Stop tears down the watches and silences any pending fire

📝 Design Philosophy:
fsnotify watches are not recursive, so the subscription maintains its
own set: subdirectories are added when first seen and newly created
directories are picked up from create events. A watch-primitive failure
after establishment is surfaced once on Err, after which the
subscription is permanently inert until re-created.
*/
package watch
