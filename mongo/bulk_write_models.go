// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

// WriteModel is the interface satisfied by all models for bulk writes. The
// set of models is closed: it is implemented only by the types in this
// package.
type WriteModel interface {
	writeModel()
}

// InsertOneModel is used to insert a single document in a BulkWrite operation.
type InsertOneModel[T any] struct {
	Document T
}

// NewInsertOneModel creates a new InsertOneModel.
func NewInsertOneModel[T any]() *InsertOneModel[T] {
	return &InsertOneModel[T]{}
}

// SetDocument specifies the document to be inserted. If the collection's codec
// generates ids, an _id is added to the document if it has none. Maps and
// struct pointers get the _id in place; a bson.D is left as is and only the
// encoded copy carries it.
func (iom *InsertOneModel[T]) SetDocument(doc T) *InsertOneModel[T] {
	iom.Document = doc
	return iom
}

func (*InsertOneModel[T]) writeModel() {}

// InsertManyModel is used to insert several documents in a BulkWrite
// operation. The documents are sent as a single insert request, in order, so
// results and errors refer to the model's index.
type InsertManyModel[T any] struct {
	Documents []T
}

// NewInsertManyModel creates a new InsertManyModel.
func NewInsertManyModel[T any]() *InsertManyModel[T] {
	return &InsertManyModel[T]{}
}

// SetDocuments specifies the documents to be inserted.
func (imm *InsertManyModel[T]) SetDocuments(docs ...T) *InsertManyModel[T] {
	imm.Documents = docs
	return imm
}

func (*InsertManyModel[T]) writeModel() {}

// DeleteOneModel is used to delete at most one document in a BulkWrite operation.
type DeleteOneModel struct {
	Filter interface{}
}

// NewDeleteOneModel creates a new DeleteOneModel.
func NewDeleteOneModel() *DeleteOneModel {
	return &DeleteOneModel{}
}

// SetFilter specifies a filter to use to select the document to delete. A nil
// filter matches all documents. If the filter matches multiple documents, one
// will be selected from the matched set.
func (dom *DeleteOneModel) SetFilter(filter interface{}) *DeleteOneModel {
	dom.Filter = filter
	return dom
}

func (*DeleteOneModel) writeModel() {}

// DeleteManyModel is used to delete multiple documents in a BulkWrite operation.
type DeleteManyModel struct {
	Filter interface{}
}

// NewDeleteManyModel creates a new DeleteManyModel.
func NewDeleteManyModel() *DeleteManyModel {
	return &DeleteManyModel{}
}

// SetFilter specifies a filter to use to select documents to delete. A nil
// filter matches all documents.
func (dmm *DeleteManyModel) SetFilter(filter interface{}) *DeleteManyModel {
	dmm.Filter = filter
	return dmm
}

func (*DeleteManyModel) writeModel() {}

// ReplaceOneModel is used to replace at most one document in a BulkWrite operation.
type ReplaceOneModel[T any] struct {
	Upsert      *bool
	Filter      interface{}
	Replacement T
}

// NewReplaceOneModel creates a new ReplaceOneModel.
func NewReplaceOneModel[T any]() *ReplaceOneModel[T] {
	return &ReplaceOneModel[T]{}
}

// SetFilter specifies a filter to use to select the document to replace. If
// the filter matches multiple documents, one will be selected from the matched
// set.
func (rom *ReplaceOneModel[T]) SetFilter(filter interface{}) *ReplaceOneModel[T] {
	rom.Filter = filter
	return rom
}

// SetReplacement specifies a document that will be used to replace the
// selected document. It cannot contain any update operators.
func (rom *ReplaceOneModel[T]) SetReplacement(rep T) *ReplaceOneModel[T] {
	rom.Replacement = rep
	return rom
}

// SetUpsert specifies whether or not the replacement document should be
// inserted if no document matching the filter is found. The default value is
// false.
func (rom *ReplaceOneModel[T]) SetUpsert(upsert bool) *ReplaceOneModel[T] {
	rom.Upsert = &upsert
	return rom
}

func (*ReplaceOneModel[T]) writeModel() {}

// UpdateOneModel is used to update at most one document in a BulkWrite operation.
type UpdateOneModel struct {
	Upsert *bool
	Filter interface{}
	Update interface{}
}

// NewUpdateOneModel creates a new UpdateOneModel.
func NewUpdateOneModel() *UpdateOneModel {
	return &UpdateOneModel{}
}

// SetFilter specifies a filter to use to select the document to update. If the
// filter matches multiple documents, one will be selected from the matched set.
func (uom *UpdateOneModel) SetFilter(filter interface{}) *UpdateOneModel {
	uom.Filter = filter
	return uom
}

// SetUpdate specifies the modifications to be made to the selected document.
// The value must be a document containing update operators.
func (uom *UpdateOneModel) SetUpdate(update interface{}) *UpdateOneModel {
	uom.Update = update
	return uom
}

// SetUpsert specifies whether or not a new document should be inserted if no
// document matching the filter is found. The default value is false.
func (uom *UpdateOneModel) SetUpsert(upsert bool) *UpdateOneModel {
	uom.Upsert = &upsert
	return uom
}

func (*UpdateOneModel) writeModel() {}

// UpdateManyModel is used to update multiple documents in a BulkWrite operation.
type UpdateManyModel struct {
	Upsert *bool
	Filter interface{}
	Update interface{}
}

// NewUpdateManyModel creates a new UpdateManyModel.
func NewUpdateManyModel() *UpdateManyModel {
	return &UpdateManyModel{}
}

// SetFilter specifies a filter to use to select documents to update.
func (umm *UpdateManyModel) SetFilter(filter interface{}) *UpdateManyModel {
	umm.Filter = filter
	return umm
}

// SetUpdate specifies the modifications to be made to the selected documents.
// The value must be a document containing update operators.
func (umm *UpdateManyModel) SetUpdate(update interface{}) *UpdateManyModel {
	umm.Update = update
	return umm
}

// SetUpsert specifies whether or not a new document should be inserted if no
// document matching the filter is found. The default value is false.
func (umm *UpdateManyModel) SetUpsert(upsert bool) *UpdateManyModel {
	umm.Upsert = &upsert
	return umm
}

func (*UpdateManyModel) writeModel() {}
