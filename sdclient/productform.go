package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cast"

	"github.com/salesdesk/salesdesk/client"
)

// productFormWindow creates a new product or edits an existing one.
type productFormWindow struct {
	initless
	as   *appState
	orig *client.Product

	form        formHelper
	productID   *textInputHelper
	name        *textInputHelper
	category    *textInputHelper
	price       *textInputHelper
	stock       *textInputHelper
	image       *textInputHelper
	description *textInputHelper
}

func newProductFormWindow(as *appState, orig *client.Product) (tea.Model, tea.Cmd) {
	pfw := productFormWindow{as: as, orig: orig}

	var name, category, price, stock, image, description string
	if orig != nil {
		name = orig.Name
		category = orig.Category
		price = fmt.Sprintf("%.2f", orig.Price)
		stock = fmt.Sprintf("%d", orig.Stock())
		image = orig.FirstImage()
		description = orig.Description
	}

	// The id is only editable on create; edits keep the existing id, which
	// the window title shows.
	if orig == nil {
		pfw.productID = newTextInputHelper(as.styles,
			tihWithPrompt("Product id: "))
	}
	pfw.name = newTextInputHelper(as.styles,
		tihWithPrompt("Name: "), tihWithValue(name))
	pfw.category = newTextInputHelper(as.styles,
		tihWithPrompt("Category: "), tihWithValue(category))
	pfw.price = newTextInputHelper(as.styles,
		tihWithPrompt("Price: "), tihWithValue(price))
	pfw.stock = newTextInputHelper(as.styles,
		tihWithPrompt("Stock: "), tihWithValue(stock))
	pfw.image = newTextInputHelper(as.styles,
		tihWithPrompt("Image URL: "), tihWithValue(image))
	pfw.description = newTextInputHelper(as.styles,
		tihWithPrompt("Description: "), tihWithValue(description))

	inputs := make([]tea.Model, 0, 9)
	if pfw.productID != nil {
		inputs = append(inputs, pfw.productID)
	}
	inputs = append(inputs,
		pfw.name,
		pfw.category,
		pfw.price,
		pfw.stock,
		pfw.image,
		pfw.description,
		newButtonHelper(as.styles,
			btnWithLabel("[ Save ]"),
			btnWithTrailing("  "),
			btnWithFixedMsgAction(msgSubmitForm{})),
		newButtonHelper(as.styles,
			btnWithLabel("[ Cancel ]"),
			btnWithTrailing("\n"),
			btnWithFixedMsgAction(msgCancelForm{})),
	)
	pfw.form = newFormHelper(as.styles, inputs...)

	return pfw, nil
}

func (pfw productFormWindow) title() string {
	if pfw.orig != nil {
		return "Edit product " + pfw.orig.ProductID
	}
	return "New product"
}

// submit validates the form and returns the save cmd, or a toast cmd
// describing the first problem.
func (pfw productFormWindow) submit() (tea.Cmd, bool) {
	as := pfw.as

	var productID string
	if pfw.orig != nil {
		productID = pfw.orig.ProductID
	} else {
		productID = strings.TrimSpace(pfw.productID.Value())
		if productID == "" {
			return as.showToast(toastWarn, "Product id is required"), false
		}
	}
	name := strings.TrimSpace(pfw.name.Value())
	if name == "" {
		return as.showToast(toastWarn, "Name is required"), false
	}
	price, err := cast.ToFloat64E(strings.TrimSpace(pfw.price.Value()))
	if err != nil || price < 0 {
		return as.showToast(toastWarn, "Price %q is not a valid amount",
			pfw.price.Value()), false
	}
	stock, err := parseCount(pfw.stock.Value())
	if err != nil {
		return as.showToast(toastWarn, "%v", err), false
	}

	p := client.Product{
		ProductID:   productID,
		Name:        name,
		Category:    strings.TrimSpace(pfw.category.Value()),
		Price:       price,
		TotalStock:  stock,
		Description: pfw.description.Value(),
		Status:      client.ProductListed,
	}
	if img := strings.TrimSpace(pfw.image.Value()); img != "" {
		p.Images = []string{img}
	}

	if pfw.orig != nil {
		p.Status = pfw.orig.Status
		p.RealTimeStock = stock
		return as.actionCmd(pageProducts, "Product "+p.ProductID+" updated",
			func(ctx context.Context) error {
				return as.c.UpdateProduct(ctx, &p)
			}), true
	}

	return as.actionCmd(pageProducts, "Product created",
		func(ctx context.Context) error {
			return as.c.CreateProduct(ctx, &p)
		}), true
}

func (pfw productFormWindow) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	as := pfw.as

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		as.winW, as.winH = msg.Width, msg.Height
		return pfw, nil

	case msgExpireToast:
		as.expireToast(msg.id)
		return pfw, nil

	case msgCancelForm:
		cw, cmd := newConsoleWindow(as)
		return cw, cmd

	case msgSubmitForm:
		cmd, ok := pfw.submit()
		if !ok {
			return pfw, cmd
		}
		cw, showCmd := newConsoleWindow(as)
		return cw, batchCmds(appendCmd(appendCmd(nil, cmd), showCmd))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return pfw, tea.Quit
		case "esc":
			cw, cmd := newConsoleWindow(as)
			return cw, cmd
		}

		var cmd tea.Cmd
		pfw.form, cmd = pfw.form.Update(msg)
		return pfw, cmd
	}

	var cmd tea.Cmd
	pfw.form, cmd = pfw.form.Update(msg)
	return pfw, cmd
}

func (pfw productFormWindow) View() string {
	as := pfw.as
	var b strings.Builder
	b.WriteString(as.styles.header.Render(" " + pfw.title() + " "))
	b.WriteString("\n\n")
	b.WriteString(pfw.form.View())
	b.WriteString(as.styles.help.Render("tab:next field esc:cancel"))

	body := b.String()
	lines := strings.Count(body, "\n")
	pad := as.winH - lines - 2
	if pad > 0 {
		body += strings.Repeat("\n", pad)
	}
	return fmt.Sprintf("%s\n%s", body, as.footerView(""))
}
