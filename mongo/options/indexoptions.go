// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package options

// IndexOptions represents options that can be used to configure a CreateIndex operation.
type IndexOptions struct {
	// If true, the index will be built in the background on the server and will not block other tasks. The default
	// value is false.
	Background *bool

	// The number of seconds before a document in the collection expires, for TTL indexes.
	ExpireAfterSeconds *int32

	// The name of the index. The default value is "[field1]_[direction1]_[field2]_[direction2]...". For example, an
	// index with the specification {name: 1, age: -1} will be named "name_1_age_-1".
	Name *string

	// If true, the index will only reference documents that contain the fields specified in the index. The default is
	// false.
	Sparse *bool

	// If true, the collection will not accept insertion or update of documents where the index key value matches an
	// existing value in the index. The default is false.
	Unique *bool

	// The index version number, either 0 or 1.
	Version *int32

	// A document that contains field and weight pairs for text indexes.
	Weights interface{}

	// The language that determines the list of stop words for text indexes.
	DefaultLanguage *string

	// The name of the field in the collection's documents that contains the override language for text indexes.
	LanguageOverride *string

	// The index version number for a text index.
	TextVersion *int32

	// The index version number for a 2dsphere index.
	SphereVersion *int32

	// The number of precision of the stored geohash value of the location data, for 2d indexes.
	Bits *int32

	// The upper inclusive boundary for longitude and latitude values, for 2d indexes.
	Max *float64

	// The lower inclusive boundary for longitude and latitude values, for 2d indexes.
	Min *float64

	// The number of units within which to group location values, for geoHaystack indexes.
	BucketSize *float64
}

// Index creates a new IndexOptions instance.
func Index() *IndexOptions {
	return &IndexOptions{}
}

// SetBackground sets value for the Background field.
func (i *IndexOptions) SetBackground(background bool) *IndexOptions {
	i.Background = &background
	return i
}

// SetExpireAfterSeconds sets value for the ExpireAfterSeconds field.
func (i *IndexOptions) SetExpireAfterSeconds(seconds int32) *IndexOptions {
	i.ExpireAfterSeconds = &seconds
	return i
}

// SetName sets the value for the Name field.
func (i *IndexOptions) SetName(name string) *IndexOptions {
	i.Name = &name
	return i
}

// SetSparse sets the value of the Sparse field.
func (i *IndexOptions) SetSparse(sparse bool) *IndexOptions {
	i.Sparse = &sparse
	return i
}

// SetUnique sets the value for the Unique field.
func (i *IndexOptions) SetUnique(unique bool) *IndexOptions {
	i.Unique = &unique
	return i
}

// SetVersion sets the value for the Version field.
func (i *IndexOptions) SetVersion(version int32) *IndexOptions {
	i.Version = &version
	return i
}

// SetWeights sets the value for the Weights field.
func (i *IndexOptions) SetWeights(weights interface{}) *IndexOptions {
	i.Weights = weights
	return i
}

// SetDefaultLanguage sets the value for the DefaultLanguage field.
func (i *IndexOptions) SetDefaultLanguage(language string) *IndexOptions {
	i.DefaultLanguage = &language
	return i
}

// SetLanguageOverride sets the value of the LanguageOverride field.
func (i *IndexOptions) SetLanguageOverride(override string) *IndexOptions {
	i.LanguageOverride = &override
	return i
}

// SetTextVersion sets the value for the TextVersion field.
func (i *IndexOptions) SetTextVersion(version int32) *IndexOptions {
	i.TextVersion = &version
	return i
}

// SetSphereVersion sets the value for the SphereVersion field.
func (i *IndexOptions) SetSphereVersion(version int32) *IndexOptions {
	i.SphereVersion = &version
	return i
}

// SetBits sets the value for the Bits field.
func (i *IndexOptions) SetBits(bits int32) *IndexOptions {
	i.Bits = &bits
	return i
}

// SetMax sets the value for the Max field.
func (i *IndexOptions) SetMax(max float64) *IndexOptions {
	i.Max = &max
	return i
}

// SetMin sets the value for the Min field.
func (i *IndexOptions) SetMin(min float64) *IndexOptions {
	i.Min = &min
	return i
}

// SetBucketSize sets the value for the BucketSize field.
func (i *IndexOptions) SetBucketSize(bucketSize float64) *IndexOptions {
	i.BucketSize = &bucketSize
	return i
}

// MergeIndexOptions combines the given IndexOptions into a single IndexOptions in a last-one-wins fashion.
func MergeIndexOptions(opts ...*IndexOptions) *IndexOptions {
	i := Index()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if opt.Background != nil {
			i.Background = opt.Background
		}
		if opt.ExpireAfterSeconds != nil {
			i.ExpireAfterSeconds = opt.ExpireAfterSeconds
		}
		if opt.Name != nil {
			i.Name = opt.Name
		}
		if opt.Sparse != nil {
			i.Sparse = opt.Sparse
		}
		if opt.Unique != nil {
			i.Unique = opt.Unique
		}
		if opt.Version != nil {
			i.Version = opt.Version
		}
		if opt.Weights != nil {
			i.Weights = opt.Weights
		}
		if opt.DefaultLanguage != nil {
			i.DefaultLanguage = opt.DefaultLanguage
		}
		if opt.LanguageOverride != nil {
			i.LanguageOverride = opt.LanguageOverride
		}
		if opt.TextVersion != nil {
			i.TextVersion = opt.TextVersion
		}
		if opt.SphereVersion != nil {
			i.SphereVersion = opt.SphereVersion
		}
		if opt.Bits != nil {
			i.Bits = opt.Bits
		}
		if opt.Max != nil {
			i.Max = opt.Max
		}
		if opt.Min != nil {
			i.Min = opt.Min
		}
		if opt.BucketSize != nil {
			i.BucketSize = opt.BucketSize
		}
	}

	return i
}

// RenameCollectionOptions represents options that can be used to configure a RenameCollection operation.
type RenameCollectionOptions struct {
	// If true, an existing collection with the target name is dropped before the rename. The default value is false.
	DropTarget *bool
}

// RenameCollection creates a new RenameCollectionOptions instance.
func RenameCollection() *RenameCollectionOptions {
	return &RenameCollectionOptions{}
}

// SetDropTarget sets the value for the DropTarget field.
func (rc *RenameCollectionOptions) SetDropTarget(b bool) *RenameCollectionOptions {
	rc.DropTarget = &b
	return rc
}

// MergeRenameCollectionOptions combines the given RenameCollectionOptions instances into a single
// RenameCollectionOptions in a last-one-wins fashion.
func MergeRenameCollectionOptions(opts ...*RenameCollectionOptions) *RenameCollectionOptions {
	rc := RenameCollection()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if opt.DropTarget != nil {
			rc.DropTarget = opt.DropTarget
		}
	}

	return rc
}
