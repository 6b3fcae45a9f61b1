// Package listmanagement is a typed facade over the Alexa List Management
// REST API.
//
// A [Client] is constructed per invocation from the request envelope's
// apiEndpoint and apiAccessToken. It exposes one method per
// (operation, object type) pair: ReadAllLists, ReadList, CreateList,
// UpdateList, DeleteList, ReadListItem, CreateListItem, UpdateListItem and
// DeleteListItem.
//
// Request inputs are validated before any network call, so a missing id or
// version fails fast. Expected host failures (not found, version conflict,
// throttled) come back as [*types.HostError] values distinguishable with
// [types.AsHostError]; transport faults and unexpected statuses are plain
// wrapped errors. Update and delete operations return no body on success.
package listmanagement
