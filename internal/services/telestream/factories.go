package telestream

import "context"

// GetFactories lists the factories visible to the account.
func (c *Client) GetFactories(ctx context.Context) ([]Factory, error) {
	return invoke[[]Factory](ctx, c, Get("", "factories.json", nil))
}

// ChangeFactoryName renames a factory.
func (c *Client) ChangeFactoryName(ctx context.Context, factoryID, newName string) (Factory, error) {
	if err := requireIDs("factoryId", factoryID, "name", newName); err != nil {
		return Factory{}, err
	}
	body := struct {
		Name string `json:"name"`
	}{Name: newName}
	return invoke[Factory](ctx, c, Put("", resourcePath("factories", factoryID), nil, body))
}
