// Package hclloader implements config.Loader for HCL build files. It walks
// the load roots for *.build.hcl files, decodes their `target` blocks, and
// assigns each declaration a canonical address derived from the file's
// directory.
package hclloader
