/*
Package chromiasdk provides a client SDK for the Chromia color service.

# Overview

The package is organized around three types:

  - Client: public operations (register, login, community feed, health)
  - Session: bearer-authenticated operations for one account
  - Store: an observable client-side data store built on top of both

Create a Client to talk to a server and log in for a Session:

	client := chromiasdk.NewClient("https://chromia.example.com")

	feed, err := client.CommunityColors(ctx, 1, 12, "")

	session, err := client.Login(ctx, "alice", "password")

Sessions cover everything tied to the account:

	color, err := session.CreateColor(ctx, "Sunset Orange", "#ff5733")
	palettes, err := session.OwnPalettes(ctx)

# The data store

Applications that render state (CLIs, TUIs, desktop frontends) can use
Store instead of juggling Client and Session directly. The store owns
the session, caches palettes and the community feed, tracks per-concern
loading and error flags, and notifies subscribers on every change:

	store := chromiasdk.NewStore(client, chromiasdk.NewFileCredentialStore(path))
	unsubscribe := store.Subscribe(render)
	defer unsubscribe()

	_ = store.Initialize(ctx) // restore a persisted login, if any

	if err := store.Login(ctx, username, password); err != nil {
		// store.Snapshot().AuthError carries the same error
	}

	_ = store.FetchCommunityColors(ctx, 1, 12, "", true)
	_ = store.LoadMoreCommunityColors(ctx)

Logins persist through the injected CredentialStore and are silently
revalidated by Initialize on the next run.

# Errors

Server errors arrive as *APIError values carrying the HTTP status and a
stable code. Compare with errors.Is against the package sentinels:

	_, err := client.Login(ctx, username, password)
	if errors.Is(err, chromiasdk.ErrInvalidCredentials) {
		// wrong username or password
	}
*/
package chromiasdk
