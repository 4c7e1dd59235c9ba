package main

import (
	"encoding/json"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// localStore adapts the browser's localStorage to the session storage
// interface. Values are stored JSON-encoded.
type localStore struct{}

func (localStore) Get(key string, value any) error {
	item := app.Window().Get("localStorage").Call("getItem", key)
	if !item.Truthy() {
		return nil
	}
	return json.Unmarshal([]byte(item.String()), value)
}

func (localStore) Set(key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	app.Window().Get("localStorage").Call("setItem", key, string(b))
	return nil
}

func (localStore) Del(key string) {
	app.Window().Get("localStorage").Call("removeItem", key)
}
