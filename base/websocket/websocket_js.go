// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build js

package websocket

import (
	"syscall/js"

	"cogentcore.org/arview/base/errors"
)

// Client represents a WebSocket client connection.
// You can use [Connect] to create a new Client.
type Client struct {

	// ws is the underlying JavaScript WebSocket object.
	// See https://developer.mozilla.org/en-US/docs/Web/API/WebSocket
	ws js.Value
}

// Connect connects to a WebSocket server and returns a [Client].
// It waits until the connection is open, so it must not be called
// from inside a JavaScript callback.
func Connect(url string) (*Client, error) {
	ws := js.Global().Get("WebSocket").New(url)
	ws.Set("binaryType", "arraybuffer")
	res := make(chan error, 1)
	var onOpen, onError js.Func
	onOpen = js.FuncOf(func(this js.Value, args []js.Value) any {
		res <- nil
		return nil
	})
	onError = js.FuncOf(func(this js.Value, args []js.Value) any {
		res <- errors.New("websocket: error connecting to " + url)
		return nil
	})
	ws.Call("addEventListener", "open", onOpen)
	ws.Call("addEventListener", "error", onError)
	err := <-res
	ws.Call("removeEventListener", "open", onOpen)
	ws.Call("removeEventListener", "error", onError)
	onOpen.Release()
	onError.Release()
	if err != nil {
		return nil, err
	}
	return &Client{ws: ws}, nil
}

// OnMessage sets a callback function to be called when a message is received.
// This function can only be called once.
func (c *Client) OnMessage(f func(typ MessageTypes, msg []byte)) {
	c.ws.Call("addEventListener", "message", js.FuncOf(func(this js.Value, args []js.Value) any {
		data := args[0].Get("data")
		if data.Type() == js.TypeString {
			f(TextMessage, []byte(data.String()))
			return nil
		}
		arr := js.Global().Get("Uint8Array").New(data)
		b := make([]byte, arr.Length())
		js.CopyBytesToGo(b, arr)
		f(BinaryMessage, b)
		return nil
	}))
}

// Send sends a message to the WebSocket server with the given type and message.
func (c *Client) Send(typ MessageTypes, msg []byte) error {
	if c.ws.Get("readyState").Int() != 1 {
		return errors.New("websocket: connection is not open")
	}
	if typ == TextMessage {
		c.ws.Call("send", string(msg))
		return nil
	}
	arr := js.Global().Get("Uint8Array").New(len(msg))
	js.CopyBytesToJS(arr, msg)
	c.ws.Call("send", arr)
	return nil
}

// Close cleanly closes the WebSocket connection.
func (c *Client) Close() error {
	c.ws.Call("close", 1000)
	return nil
}

// OnClose sets a callback function to be called when the connection is closed.
// This function can only be called once.
func (c *Client) OnClose(f func()) {
	c.ws.Call("addEventListener", "close", js.FuncOf(func(this js.Value, args []js.Value) any {
		f()
		return nil
	}))
}
