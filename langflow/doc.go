// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package langflow provides a flowrace.Invoker implementation for
// Langflow flow run endpoints. Backend identifiers are flow ids, the
// query is delivered as the flow's chat input, and the race's
// correlation identifier becomes the Langflow session id.
package langflow
