// Package telestream is a client for the Telestream Cloud Flip REST API.
//
// Every resource operation validates its identifiers, builds a Request with
// Get/Post/Put/Delete (scoped to a factory through the factory_id parameter),
// and hands it to a single invoker that signs the request, sends it, and
// decodes the JSON response. Failures surface as *ValidationError,
// *ProtocolError, *DeserializationError or *TransportError, each of which
// matches the corresponding marker in package services via errors.Is.
//
// Uploads are two steps: StartUpload obtains an UploadSession, then
// UploadFile streams the data to the session location in 5 MiB chunks tagged
// with Content-Range headers.
package telestream
