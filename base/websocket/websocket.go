// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package websocket provides a cross-platform WebSocket client,
// backed by the browser WebSocket object on the web and by
// gorilla/websocket everywhere else.
package websocket

// MessageTypes are the types of messages that can be sent and received.
type MessageTypes int

const (
	// TextMessage denotes a text data message. The text message payload is
	// interpreted as UTF-8 encoded text data.
	TextMessage MessageTypes = 1

	// BinaryMessage denotes a binary data message.
	BinaryMessage MessageTypes = 2
)
