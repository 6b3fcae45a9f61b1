package types

import "errors"

// ListState is the lifecycle state of an Alexa list.
type ListState string

// Supported list states.
const (
	ListStateActive   ListState = "active"
	ListStateArchived ListState = "archived"
)

// ItemStatus is the completion status of an Alexa list item.
type ItemStatus string

// Supported item statuses.
const (
	ItemStatusActive    ItemStatus = "active"
	ItemStatusCompleted ItemStatus = "completed"
)

// AlexaListMetadata describes a list without its items, as returned by list
// create and read-all operations.
type AlexaListMetadata struct {
	ListID  string    `json:"listId"`
	Name    string    `json:"name"`
	State   ListState `json:"state"`
	Version int64     `json:"version,omitempty"`
}

// AlexaListsMetadata is the read-all-lists response.
type AlexaListsMetadata struct {
	Lists []AlexaListMetadata `json:"lists"`
}

// AlexaListItem is a single item in an Alexa list. Version is the host's
// optimistic-concurrency counter and must be sent back unchanged on every
// mutation of the item.
type AlexaListItem struct {
	ID          string     `json:"id"`
	Value       string     `json:"value"`
	Status      ItemStatus `json:"status"`
	Version     int64      `json:"version"`
	CreatedTime string     `json:"createdTime,omitempty"`
	UpdatedTime string     `json:"updatedTime,omitempty"`
}

// AlexaList is a full list snapshot including its items.
type AlexaList struct {
	ListID  string          `json:"listId"`
	Name    string          `json:"name"`
	State   ListState       `json:"state"`
	Version int64           `json:"version"`
	Items   []AlexaListItem `json:"items"`
}

// ReadList is the input for reading a single list. State defaults to active
// when empty.
type ReadList struct {
	ListID string    `json:"list_id"`
	State  ListState `json:"state,omitempty"`
}

// Validate checks the required fields.
func (r ReadList) Validate() error {
	if r.ListID == "" {
		return errors.New("list id cannot be empty")
	}

	return nil
}

// CreateList is the input for creating a list. State defaults to active when
// empty.
type CreateList struct {
	Name  string    `json:"name"`
	State ListState `json:"state,omitempty"`
}

// Validate checks the required fields.
func (r CreateList) Validate() error {
	if r.Name == "" {
		return errors.New("list name cannot be empty")
	}

	return nil
}

// UpdateList is the input for updating a list. Version is required; a stale
// value is rejected by the host with a conflict error.
type UpdateList struct {
	ListID  string    `json:"list_id"`
	Name    string    `json:"name"`
	State   ListState `json:"state,omitempty"`
	Version int64     `json:"version"`
}

// Validate checks the required fields.
func (r UpdateList) Validate() error {
	if r.ListID == "" {
		return errors.New("list id cannot be empty")
	}

	if r.Name == "" {
		return errors.New("list name cannot be empty")
	}

	if r.Version < 1 {
		return errors.New("list version is required for updates")
	}

	return nil
}

// DeleteList is the input for deleting a list.
type DeleteList struct {
	ListID string `json:"list_id"`
}

// Validate checks the required fields.
func (r DeleteList) Validate() error {
	if r.ListID == "" {
		return errors.New("list id cannot be empty")
	}

	return nil
}

// ReadListItem is the input for reading a single list item.
type ReadListItem struct {
	ListID string `json:"list_id"`
	ItemID string `json:"item_id"`
}

// Validate checks the required fields.
func (r ReadListItem) Validate() error {
	if r.ListID == "" {
		return errors.New("list id cannot be empty")
	}

	if r.ItemID == "" {
		return errors.New("item id cannot be empty")
	}

	return nil
}

// CreateListItem is the input for creating a list item. Status defaults to
// active when empty.
type CreateListItem struct {
	ListID string     `json:"list_id"`
	Value  string     `json:"value"`
	Status ItemStatus `json:"status,omitempty"`
}

// Validate checks the required fields.
func (r CreateListItem) Validate() error {
	if r.ListID == "" {
		return errors.New("list id cannot be empty")
	}

	if r.Value == "" {
		return errors.New("item value cannot be empty")
	}

	return nil
}

// UpdateListItem is the input for updating a list item. Version is required;
// a stale value is rejected by the host with a conflict error.
type UpdateListItem struct {
	ListID  string     `json:"list_id"`
	ItemID  string     `json:"item_id"`
	Value   string     `json:"value"`
	Status  ItemStatus `json:"status,omitempty"`
	Version int64      `json:"version"`
}

// Validate checks the required fields.
func (r UpdateListItem) Validate() error {
	if r.ListID == "" {
		return errors.New("list id cannot be empty")
	}

	if r.ItemID == "" {
		return errors.New("item id cannot be empty")
	}

	if r.Value == "" {
		return errors.New("item value cannot be empty")
	}

	if r.Version < 1 {
		return errors.New("item version is required for updates")
	}

	return nil
}

// DeleteListItem is the input for deleting a list item.
type DeleteListItem struct {
	ListID string `json:"list_id"`
	ItemID string `json:"item_id"`
}

// Validate checks the required fields.
func (r DeleteListItem) Validate() error {
	if r.ListID == "" {
		return errors.New("list id cannot be empty")
	}

	if r.ItemID == "" {
		return errors.New("item id cannot be empty")
	}

	return nil
}
