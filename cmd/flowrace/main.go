// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command flowrace is an interactive chat client that races each
// query across redundant Langflow flows with staggered starts and
// prints the first usable answer.
package main

func main() {
	Execute()
}
