package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digitalpersonal/guarafood-app-sub001/entity"
)

func acaiItem() *entity.MenuItem {
	return &entity.MenuItem{
		ID:    "a1",
		Name:  "Açaí",
		Price: 1500,
		Sizes: []entity.Size{
			{Name: "300ml", Price: 1500},
			{Name: "500ml", Price: 1800},
			{Name: "700ml", Price: 2200},
		},
		AvailableAddonIDs: []string{"ad1", "ad2"},
	}
}

func configCtx() *ConfigContext {
	return &ConfigContext{
		Addons: map[string]entity.Addon{
			"ad1": {ID: "ad1", Name: "Leite em pó", Price: 200},
			"ad2": {ID: "ad2", Name: "Granola", Price: 150},
		},
		Items: map[string]entity.MenuItem{
			"p1": {ID: "p1", Name: "Calabresa", Price: 4000, IsPizza: true},
			"p2": {ID: "p2", Name: "Quatro Queijos", Price: 4500, IsPizza: true},
		},
	}
}

func TestBuildCartItem_NoCustomizationYieldsPlainKey(t *testing.T) {
	line, err := BuildCartItem(acaiItem(), Selection{}, configCtx())
	require.NoError(t, err)

	assert.Equal(t, "item-a1", line.ID)
	assert.Equal(t, int64(1500), line.Price)
	assert.Equal(t, 1, line.Quantity)
}

func TestBuildCartItem_SizeTier(t *testing.T) {
	line, err := BuildCartItem(acaiItem(), Selection{SizeName: "500ml"}, configCtx())
	require.NoError(t, err)

	assert.Equal(t, "item-a1::size=500ml", line.ID)
	assert.Equal(t, int64(1800), line.Price)
	assert.Equal(t, "500ml", line.SizeName)

	_, err = BuildCartItem(acaiItem(), Selection{SizeName: "1L"}, configCtx())
	assert.ErrorIs(t, err, ErrUnknownSize)
}

func TestBuildCartItem_AddonOrderDoesNotChangeKey(t *testing.T) {
	cc := configCtx()
	a, err := BuildCartItem(acaiItem(), Selection{AddonIDs: []string{"ad2", "ad1"}}, cc)
	require.NoError(t, err)
	b, err := BuildCartItem(acaiItem(), Selection{AddonIDs: []string{"ad1", "ad2"}}, cc)
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, "item-a1::addons=ad1+ad2", a.ID)
	assert.Equal(t, int64(1500+200+150), a.Price)
	assert.Equal(t, []string{"Leite em pó", "Granola"}, a.SelectedAddons)
}

func TestBuildCartItem_AddonMustBeAvailableForItem(t *testing.T) {
	cc := configCtx()
	cc.Addons["ad9"] = entity.Addon{ID: "ad9", Name: "Bacon", Price: 300}

	item := acaiItem() // ad9 not on its available list
	_, err := BuildCartItem(item, Selection{AddonIDs: []string{"ad9"}}, cc)
	assert.ErrorIs(t, err, ErrUnknownAddon)
}

func TestBuildCartItem_HalfPizzaPricesAtMoreExpensiveHalf(t *testing.T) {
	cc := configCtx()
	calabresa := cc.Items["p1"]

	line, err := BuildCartItem(&calabresa, Selection{HalfItemID: "p2"}, cc)
	require.NoError(t, err)

	assert.Equal(t, int64(4500), line.Price)
	assert.Equal(t, "Calabresa / Quatro Queijos", line.Name)
	assert.Equal(t, "item-p1::half=p2", line.ID)

	_, err = BuildCartItem(&calabresa, Selection{HalfItemID: "a1"}, cc)
	assert.ErrorIs(t, err, ErrUnknownHalf)
}

func TestBuildCartItem_MarmitaChoices(t *testing.T) {
	item := &entity.MenuItem{
		ID: "m1", Name: "Marmita", Price: 2500, IsMarmita: true,
		MarmitaOptions: []string{"arroz", "feijão", "farofa", "salada"},
	}

	line, err := BuildCartItem(item, Selection{MarmitaChoices: []string{"farofa", "arroz"}}, configCtx())
	require.NoError(t, err)

	assert.Equal(t, "item-m1::opts=arroz+farofa", line.ID)
	assert.Equal(t, int64(2500), line.Price)
	assert.Equal(t, []string{"arroz", "farofa"}, line.SelectedAddons)
}

func TestBuildCartItem_QuantityAndNotesCarried(t *testing.T) {
	line, err := BuildCartItem(acaiItem(), Selection{Quantity: 3, Notes: "bem gelado"}, configCtx())
	require.NoError(t, err)

	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, "bem gelado", line.Notes)
}
