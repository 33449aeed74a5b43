package surface

// PadView is the JSON form of a PadState shared by the network outputs.
type PadView struct {
	Index      int     `json:"index"`
	Appearance string  `json:"appearance"`
	Color      string  `json:"color"`
	Base       string  `json:"base"`
	BaseColor  string  `json:"base_color"`
	Scale      float64 `json:"scale"`
}

// View converts a state for publication.
func (st PadState) View() PadView {
	return PadView{
		Index:      st.Index,
		Appearance: st.Appearance.String(),
		Color:      st.Appearance.Hex(),
		Base:       st.Base.String(),
		BaseColor:  st.Base.Hex(),
		Scale:      st.Scale,
	}
}
