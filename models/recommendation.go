package models

// Routine holds the step-by-step instructions for both halves of the day
type Routine struct {
	Morning string `bson:"morning" json:"morning"`
	Evening string `bson:"evening" json:"evening"`
}

// Recommendation is the validated answer of the model
type Recommendation struct {
	Analysis   string            `bson:"analysis" json:"analysis"`
	Causes     string            `bson:"causes" json:"causes"`
	Strategy   string            `bson:"strategy" json:"strategy"`
	Routine    Routine           `bson:"routine" json:"routine"`
	ProductIDs []string          `bson:"product_ids" json:"productIds"`
	Reasoning  map[string]string `bson:"reasoning" json:"reasoning"` // product id -> explanation
}
