/*
Package nextstepsdk provides a client for the Next Step authentication orchestration API.

# Overview

A Client carries the base URL and a bearer token issued to the calling service.
Tokens are HS256 JWTs carrying the "nextstep:auth" scope for the login flow
endpoints and "nextstep:admin" for administration.

	client := nextstepsdk.NewClient("https://nextstep.example.com", token)

	op, err := client.CreateOperation(ctx, nextstepsdk.CreateOperationRequest{
		OperationName: "login",
		UserID:        "user-1",
	})

	res, err := client.AuthenticateCredential(ctx, op.OperationID, nextstepsdk.AuthenticateRequest{
		AuthMethod:      "USERNAME_PASSWORD_AUTH",
		CredentialName:  "retail",
		CredentialValue: password,
	})

# Errors

Every non-2xx reply is returned as an *APIError carrying the HTTP status and
the error code reported by the server:

	if nextstepsdk.IsCode(err, "OPERATION_NOT_FOUND") {
		// ...
	}

A failed authentication is not an error: the reply carries
authenticationResult FAILED and, when enabled on the server, the remaining
attempt count.
*/
package nextstepsdk
