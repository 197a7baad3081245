package service

import "testing"

func TestSelectionCascade(t *testing.T) {
	var sel Selection
	if sel.State() != StateNone {
		t.Fatalf("estado inicial = %s", sel.State())
	}

	sel = sel.SelectConsultant("Ana")
	if sel.State() != StateConsultantChosen {
		t.Fatalf("state = %s", sel.State())
	}

	sel = sel.SelectRoute("R1")
	if sel.State() != StateRouteChosen {
		t.Fatalf("state = %s", sel.State())
	}

	sel = sel.SelectClient("Loja1")
	if sel.State() != StateClientChosen {
		t.Fatalf("state = %s", sel.State())
	}

	// trocar a rota invalida o cliente
	sel = sel.SelectRoute("R2")
	if sel.State() != StateRouteChosen || sel.Client != "" {
		t.Fatalf("cliente deveria ter sido zerado: %+v", sel)
	}

	// trocar o consultor invalida rota e cliente
	sel = sel.SelectClient("Loja2").SelectConsultant("Bia")
	if sel.Route != "" || sel.Client != "" {
		t.Fatalf("downstream deveria ter sido zerado: %+v", sel)
	}

	// consultor vazio volta ao início
	if s := sel.SelectConsultant(""); s.State() != StateNone {
		t.Fatalf("state = %s", s.State())
	}
}

func TestSelectionSkippingLevelsIsIgnored(t *testing.T) {
	var sel Selection
	if s := sel.SelectRoute("R1"); s.State() != StateNone {
		t.Fatalf("rota sem consultor deveria ser ignorada: %+v", s)
	}
	sel = sel.SelectConsultant("Ana")
	if s := sel.SelectClient("Loja1"); s.Client != "" {
		t.Fatalf("cliente sem rota deveria ser ignorado: %+v", s)
	}
}

func TestSelectionResolutionOnlyWhenClientChosen(t *testing.T) {
	snap := sampleSnapshot(t)

	var sel Selection
	sel = sel.SelectConsultant("Ana")
	if res := sel.Resolution(snap); len(res.Missing) != 0 || len(res.Sold) != 0 {
		t.Fatalf("fora de client_chosen as listas devem ser vazias: %+v", res)
	}

	sel = sel.SelectRoute("R2").SelectClient("Loja2")
	res := sel.Resolution(snap)
	if len(res.Sold) != 1 || res.Sold[0] != "Arroz" {
		t.Fatalf("sold = %v", res.Sold)
	}
}
