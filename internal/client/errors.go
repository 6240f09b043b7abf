package client

import "errors"

// ErrUsage is returned when the command line does not name a known command
// with the right number of arguments.
var ErrUsage = errors.New("invalid command line")

// Usage describes the accepted commands.
const Usage = `usage: secmsg-client [-a addr] [-b addr] [-k keydir] [-timeout d] <command>

commands:
  pubkey                      print the server public key
  register <handle> <secret>  register handle with the local public key
  login <handle> <secret>     log in and print the directory record
  connect <handle>            print a relay route to handle
  version                     print build information`
