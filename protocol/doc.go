package protocol

// This package defines the messages exchanged between a comms server and
// its clients, and the errors either side can answer with.
//
// There are three kinds of message
//
// - `Handshake` - greets a new client and establishes the connection. The load
//                 is the address of the server, which the client records.
// - `Post`      - delivers an arbitrary load to the client. Every Post counts
//                 towards the client's limit.
// - `Get`       - asks the client how many Posts it has received. The client
//                 answers with the count in decimal. The load is unused.
//
// Messages are plain values handed from the server to a client by direct
// calls. There is no wire format between them.
//
// === Display
//
// Each type has a header token which is only used for display
//
//   ```
//     [HANDSHAKE]
//     [POST]
//     [GET]
//   ```
//
// and a message renders as its header, a newline, then its load.
//
// === Text notation
//
// Scripts given to the comms binary describe messages on a single line
//
//   ```
//     POST Hello from the other side!
//     GET
//     HANDSHAKE 10.0.0.1
//   ```
//
// The type is case sensitive and is separated from the load by one space.
//
// === Transcripts
//
// Results of a scripted session are written one per line, prefixed with the
// peer address
//
//   ```
//     <addr> OK\r\n
//     <addr> <response>\r\n
//     <addr> ERR <errMessage>\r\n
//   ```
//
// === Errors
//
// Rejections are `*Error` values. Their messages are fixed, for example
//
//   ```
//     Client 'TestClient' cannot ingest more messages.
//     Tried to send a message through a halted connection ('197.0.0.1').
//   ```
//
// Compare them against the sentinels with errors.Is rather than by message.
//
