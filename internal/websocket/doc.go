// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

/*
Package websocket pushes live dashboard updates to browsers.

It uses gorilla/websocket with a hub-and-spoke layout:

	┌──────────┐
	│   Hub    │ ← one goroutine owns the client set
	└────┬─────┘
	     │
	┌────┴─────┬─────────┐
	│ Client1  │ Client2 │ ...
	└──────────┴─────────┘

Each client runs a readPump (answers application pings, detects closes) and a
writePump (delivers queued messages, sends protocol pings).

Message Types:

	summary_update  {"type":"summary_update","data":{...last-prediction summary...}}
	ping            client -> server
	pong            server -> client, reply to ping

After every successful prediction the API calls Hub.BroadcastSummary. The most
recent summary is also sent to each client as soon as it registers, so a
freshly opened dashboard does not wait for the next prediction.

Hub.RunWithContext is run by the supervisor tree and closes every client when
its context is canceled.
*/
package websocket
