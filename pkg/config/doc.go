/*
Package config loads spleen's application configuration.

🎯 Purpose:
- Parses `.spleen.yaml` / `.spleen.hcl` via a small parser registry
- Validates values and fills defaults (debounce interval, ignores)
- Stays entirely optional: a missing file yields the defaults

🤝 Interfaces:
- Parser: one per supported file format, registered at init
*/
package config
