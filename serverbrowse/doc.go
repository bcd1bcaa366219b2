// Package serverbrowse implements the connection-less server-browser
// wire formats: the request/response pairs a client exchanges with a
// game server or a master server outside of any connection, grounded on
// original_source/gamenet/ddnet/src/msg/connless.rs. It also models the
// JSON shape of a master-registration request/response
// (original_source/register/src/lib.rs) as data types; the HTTP client
// that sends them is explicitly out of scope.
package serverbrowse
