// Package main hosts the subgif CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration, builds the structured logger,
// and hands directories to the workflow runner. convert renders clips, plan
// previews them, doctor checks the environment, and config scaffolds the TOML
// file.
package main
