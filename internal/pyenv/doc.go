// Package pyenv resolves Python installation scopes from configuration and the
// process environment, including active virtual environment detection.
package pyenv
