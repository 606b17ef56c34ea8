package fstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/flatdoc/fdoc/lib/docstore"
	"github.com/flatdoc/fdoc/lib/format"
)

type storeImpl struct {
	baseDir  string
	registry *format.Registry
	locks    *pathLocks
}

// NewFileStore creates a document store backed by one JSON file per
// (Type, file reference) pair under baseDir. The registry must be fully
// loaded; it is only read from here.
func NewFileStore(baseDir string, registry *format.Registry) docstore.IDocStore {
	return &storeImpl{
		baseDir:  baseDir,
		registry: registry,
		locks:    newPathLocks(),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see docstore/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Create(typeName, fileRef, surfaceContent, mainContent string) (json.RawMessage, error) {
	desc, path, err := s.resolve(typeName, fileRef)
	if err != nil {
		return nil, err
	}
	surface, main, err := parsePayloads(surfaceContent, mainContent)
	if err != nil {
		return nil, err
	}
	defer s.locks.lock(path)()

	// A missing or empty file is initialized to the format's empty
	// shape; a wrong root shape on an existing file is repaired.
	doc, err := s.loadForMutate(typeName, path, desc, false)
	if err != nil {
		return nil, err
	}

	items := doc.Items()
	item := docstore.Merge(surface, main)
	item["id"] = docstore.NextID(items)
	doc.SetItems(append(items, item))

	if err := s.persist(path, doc); err != nil {
		return nil, err
	}
	return json.Marshal(item)
}

func (s *storeImpl) Get(typeName, fileRef string, id int64) (json.RawMessage, error) {
	desc, path, err := s.resolve(typeName, fileRef)
	if err != nil {
		return nil, err
	}
	defer s.locks.lock(path)()

	doc, err := s.loadForRead(typeName, path, desc)
	if err != nil {
		return nil, err
	}

	items := doc.Items()
	idx := docstore.FindByID(items, id)
	if idx < 0 {
		return nil, docstore.Errorf(docstore.RetCNotFound, "Item with Data_ID %d not found.", id)
	}
	return json.Marshal(items[idx])
}

func (s *storeImpl) GetAll(typeName, fileRef string) (json.RawMessage, error) {
	desc, path, err := s.resolve(typeName, fileRef)
	if err != nil {
		return nil, err
	}
	defer s.locks.lock(path)()

	doc, err := s.loadForRead(typeName, path, desc)
	if err != nil {
		return nil, err
	}

	raw, err := doc.Encode()
	if err != nil {
		return nil, docstore.Errorf(docstore.RetCInternalError, "Could not encode document: %v", err)
	}
	return raw, nil
}

func (s *storeImpl) Update(typeName, fileRef string, id int64, surfaceContent, mainContent string) (json.RawMessage, error) {
	desc, path, err := s.resolve(typeName, fileRef)
	if err != nil {
		return nil, err
	}
	surface, main, err := parsePayloads(surfaceContent, mainContent)
	if err != nil {
		return nil, err
	}
	defer s.locks.lock(path)()

	// Update never creates a file from scratch, but it does repair a
	// wrong root shape like create does.
	doc, err := s.loadForMutate(typeName, path, desc, true)
	if err != nil {
		return nil, err
	}

	items := doc.Items()
	idx := docstore.FindByID(items, id)
	if idx < 0 {
		return nil, docstore.Errorf(docstore.RetCNotFound, "Item with Data_ID %d not found in %s for update.", id, typeName)
	}

	existing, _ := items[idx].(docstore.Object)
	merged := docstore.Merge(docstore.Merge(existing, surface), main)
	// The merge result may carry an id from the payloads; identity is
	// not updatable, so force it back.
	merged["id"] = id
	items[idx] = merged

	if err := s.persist(path, doc); err != nil {
		return nil, err
	}
	return json.Marshal(merged)
}

func (s *storeImpl) Delete(typeName, fileRef string, id int64) error {
	desc, path, err := s.resolve(typeName, fileRef)
	if err != nil {
		return err
	}
	defer s.locks.lock(path)()

	doc, err := s.loadForRead(typeName, path, desc)
	if err != nil {
		return err
	}

	items := doc.Items()
	idx := docstore.FindByID(items, id)
	if idx < 0 {
		return docstore.Errorf(docstore.RetCNotFound, "Item with Data_ID %d not found in %s.", id, typeName)
	}
	doc.SetItems(slices.Delete(items, idx, idx+1))

	return s.persist(path, doc)
}

func (s *storeImpl) DeleteAll(typeName, fileRef string) error {
	desc, path, err := s.resolve(typeName, fileRef)
	if err != nil {
		return err
	}
	defer s.locks.lock(path)()

	doc, err := s.loadForRead(typeName, path, desc)
	if err != nil {
		return err
	}

	doc.SetItems([]any{})

	return s.persist(path, doc)
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// resolve maps the Type through the registry and joins the file
// reference onto the storage root. Both checks happen before any
// filesystem access. The reference is joined as-is, so a reference
// containing ".." escapes the storage root; callers sit behind a
// trusted boundary (documented limitation).
func (s *storeImpl) resolve(typeName, fileRef string) (format.Descriptor, string, error) {
	desc, ok := s.registry.Resolve(typeName)
	if !ok {
		return format.Descriptor{}, "", docstore.Errorf(docstore.RetCClientError,
			"Unknown or unsupported Type for file operations: %s", typeName)
	}
	if fileRef == "" {
		return format.Descriptor{}, "", docstore.NewError(docstore.RetCClientError,
			"Filename not specified.")
	}
	return desc, filepath.Join(s.baseDir, filepath.FromSlash(fileRef)), nil
}

// loadForRead loads an existing document for a non-mutating operation.
// A missing file is NotFound, an unparsable file is CorruptDocument and
// so is a root shape that contradicts the declared format: reads must
// not repair.
func (s *storeImpl) loadForRead(typeName, path string, desc format.Descriptor) (*docstore.Document, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, docstore.Errorf(docstore.RetCNotFound, "Target file not found: %s", path)
	}
	if err != nil {
		return nil, docstore.Errorf(docstore.RetCIOFailure, "Could not read file: %s", path)
	}

	doc, err := docstore.ParseDocument(raw, desc)
	if err != nil {
		return nil, docstore.Errorf(docstore.RetCCorruptDocument, "Could not parse JSON from file: %s", path)
	}
	if !doc.ShapeOK() {
		return nil, s.shapeError(typeName, desc)
	}
	return doc, nil
}

// loadForMutate loads a document for create or update. Create treats a
// missing or zero-length file as the format's empty shape; update
// requires the file to exist. Either way a wrong root shape is repaired
// rather than reported.
func (s *storeImpl) loadForMutate(typeName, path string, desc format.Descriptor, mustExist bool) (*docstore.Document, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if mustExist {
			return nil, docstore.Errorf(docstore.RetCNotFound, "Target file not found: %s", path)
		}
		return docstore.NewDocument(desc), nil
	}
	if err != nil {
		return nil, docstore.Errorf(docstore.RetCIOFailure, "Could not read file: %s", path)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		if mustExist {
			return nil, docstore.Errorf(docstore.RetCCorruptDocument, "Could not parse JSON from file: %s", path)
		}
		return docstore.NewDocument(desc), nil
	}

	doc, err := docstore.ParseDocument(raw, desc)
	if err != nil {
		return nil, docstore.Errorf(docstore.RetCCorruptDocument, "Could not parse JSON from file: %s", path)
	}
	doc.EnsureShape()
	return doc, nil
}

// persist serializes the whole document and overwrites the file. There
// is no atomic rename and no backup; a failure mid-write leaves the file
// in an undefined state (documented limitation).
func (s *storeImpl) persist(path string, doc *docstore.Document) error {
	raw, err := doc.Encode()
	if err != nil {
		return docstore.Errorf(docstore.RetCInternalError, "Could not encode document: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return docstore.Errorf(docstore.RetCIOFailure, "Could not create directory for file: %s", path)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return docstore.Errorf(docstore.RetCIOFailure, "Could not write file: %s", path)
	}
	return nil
}

func (s *storeImpl) shapeError(typeName string, desc format.Descriptor) error {
	if desc.RootIsArray {
		return docstore.Errorf(docstore.RetCCorruptDocument,
			"File for Type '%s' is not a JSON array as expected.", typeName)
	}
	return docstore.Errorf(docstore.RetCCorruptDocument,
		"File for Type '%s' does not contain expected object/array structure ('%s').", typeName, desc.ArrayKey)
}

// parsePayloads validates the two content payloads. Each must be a
// single well-formed JSON object; this happens before any file is
// touched.
func parsePayloads(surfaceContent, mainContent string) (surface, main docstore.Object, err error) {
	if surface, err = parsePayload("Surface_content", surfaceContent); err != nil {
		return nil, nil, err
	}
	if main, err = parsePayload("Main_content", mainContent); err != nil {
		return nil, nil, err
	}
	return surface, main, nil
}

func parsePayload(field, content string) (docstore.Object, error) {
	decoder := json.NewDecoder(bytes.NewReader([]byte(content)))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, docstore.Errorf(docstore.RetCClientError, "Invalid JSON in '%s': %v", field, err)
	}
	if decoder.More() {
		return nil, docstore.Errorf(docstore.RetCClientError, "Invalid JSON in '%s': trailing data after object", field)
	}

	obj, ok := value.(docstore.Object)
	if !ok {
		return nil, docstore.Errorf(docstore.RetCClientError, "Content must be a JSON object in '%s'.", field)
	}
	return obj, nil
}
