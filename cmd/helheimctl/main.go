// Command helheimctl is the operator CLI. Realm creation and membership
// management are deliberately not exposed over HTTP; they happen here,
// directly against the backing tables.
package main

import "os"

func main() {
	os.Exit(Execute())
}
