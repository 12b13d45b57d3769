// Package archive reads and writes the tar.gz container of an export: the
// encoded bundle as archive.json plus the referenced images below images/.
package archive
