package store

// Item pairs submission metadata with optional file attachments. Image and
// Source hold the relative URL paths returned by the upload handler, or the
// empty string when that part was absent from the submission.
type Item struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Username    string `json:"username"`
	Image       string `json:"image"`
	Source      string `json:"source"`
}

// CreateItem appends a new item record and persists the collection.
func (s *Store) CreateItem(title, description, username, imagePath, sourcePath string) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := Item{
		ID:          s.nextID(),
		Title:       title,
		Description: description,
		Username:    username,
		Image:       imagePath,
		Source:      sourcePath,
	}
	s.items = append(s.items, item)
	if err := saveCollection(s.path(itemsFile), s.items); err != nil {
		return Item{}, err
	}
	return item, nil
}

// ListItems returns the item collection in insertion order. The slice is a
// copy; callers cannot mutate store state through it.
func (s *Store) ListItems() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// DeleteItem removes the item with the given id and persists the collection.
// The removed record is returned so the caller can clean up referenced
// blobs. An unknown id fails with ErrNotFound and changes nothing.
func (s *Store) DeleteItem(id int64) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, it := range s.items {
		if it.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Item{}, ErrNotFound
	}

	removed := s.items[idx]
	rest := make([]Item, 0, len(s.items)-1)
	rest = append(rest, s.items[:idx]...)
	rest = append(rest, s.items[idx+1:]...)
	s.items = rest

	if err := saveCollection(s.path(itemsFile), s.items); err != nil {
		return Item{}, err
	}
	return removed, nil
}
