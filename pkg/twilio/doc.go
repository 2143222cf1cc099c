/*
Package twilio holds the public types of the Twilio client: credentials, the
typed error taxonomy, pages and pagination helpers, resource shapes and the
resource client interfaces.

# Creating a client

Clients are built by package twilly:

	creds := twilio.MustCredentials(accountSID, authToken)
	client := twilly.New(&twilio.Config{Credentials: creds})

	conversation, err := client.Conversations().Get(ctx, "CH00000000000000000000000000000000")

# Errors

Every failed operation returns one of four error types, matched with errors.As
or classified with KindOf:

  - *NetworkError: the request never completed (DNS, TCP, TLS, timeout)
  - *APIError: Twilio answered with a non-2xx status and an error body
  - *ParseError: a body could not be decoded
  - *ValidationError: arguments were rejected before any request was sent

IsNotFound reports an APIError with status 404:

	_, err := client.Conversations().Get(ctx, sid)
	if twilio.IsNotFound(err) {
		fmt.Println("Conversation not found.")
	}

# Pagination

List methods walk every page eagerly with FetchAll and return all items or
an error, never a partial result. Iterate methods return a PageIterator that
fetches pages on demand:

	it := client.Accounts().Iterate(ctx, nil)
	for it.HasNext() {
		account, _ := it.Next()
		fmt.Println(account)
	}
	if err := it.Err(); err != nil {
		return err
	}
*/
package twilio
