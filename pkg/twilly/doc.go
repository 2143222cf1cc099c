// Package twilly provides the entry point for constructing a Twilio API
// client that implements the twilio.Client interface.
//
// It wires credentials, the HTTP transport and the per domain base URLs
// together on top of the resource interfaces and types defined in the twilio
// package. Most applications import twilly to build a client, then use the
// returned twilio.Client to reach the resource clients.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/TristanBlackwell/twilly/pkg/twilly"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Credentials known to be valid, e.g. constants in a tool.
//	  cli := twilly.New("AC...", "token")
//
//	  // Credentials from user input.
//	  cli, err := twilly.NewClient(accountSID, authToken,
//	    twilly.WithHTTPTimeout(10*time.Second),
//	    twilly.WithRetry(3, time.Second, 10*time.Second),
//	  )
//	  if err != nil { log.Fatal(err) }
//
//	  account, err := cli.Accounts().Get(ctx, "")
//	  if err != nil { log.Fatal(err) }
//	  log.Println(account.FriendlyName)
//	}
//
// Errors
//
// Every operation returns one of four error kinds from the twilio package:
// a *twilio.NetworkError when the request never completed, a *twilio.APIError
// when Twilio answered with an error body, a *twilio.ParseError when a body
// could not be decoded, and a *twilio.ValidationError when arguments were
// rejected before sending. twilio.IsNotFound reports a 404 APIError.
//
// Retries
//
// Requests are sent once by default. WithRetry enables retries for GET
// requests only. Creates, updates and deletes are never repeated.
package twilly
