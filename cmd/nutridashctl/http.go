package main

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

func client() *resty.Client {
	c := resty.New().
		SetBaseURL(apiFlag).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)
	if tokenFlag != "" {
		c.SetAuthToken(tokenFlag)
	}
	return c
}

// call runs a prepared request and returns the raw body, treating non-2xx
// answers as errors with the server's envelope in the message.
func call(req *resty.Request, method, path string) ([]byte, error) {
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%s %s: %s: %s", method, path, resp.Status(), resp.String())
	}
	return resp.Body(), nil
}

func doGet(path string) ([]byte, error) {
	return call(client().R(), "GET", path)
}

func doPostJSON(path string, payload interface{}) ([]byte, error) {
	return call(client().R().SetBody(payload), "POST", path)
}

func doPatchJSON(path string, payload interface{}) ([]byte, error) {
	return call(client().R().SetBody(payload), "PATCH", path)
}

func doDelete(path string) ([]byte, error) {
	return call(client().R(), "DELETE", path)
}
