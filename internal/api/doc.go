// Package api handles incoming HTTP requests for the job board: posting and
// browsing jobs, plus the terminal error middleware shared by every route.
//
// Job handlers trap their own failures and answer with the
// {message, success:false} envelope. Anything that escapes a handler, and
// any request that matches no route, is answered by ErrorHandler with a
// {message, stack} body whose stack is withheld in production.
package api
