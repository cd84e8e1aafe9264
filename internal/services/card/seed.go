package card

func sampleCards() []CreateCardRequest {
	return []CreateCardRequest{
		{
			Title:       "Primeiro contato - Padaria Central",
			Description: "Cliente pediu orçamento para **sistema de PDV**.\n\n- 3 caixas\n- integração fiscal",
			ClientName:  "Padaria Central",
			AssignedTo:  "Ana",
			Priority:    "high",
			Value:       4800,
		},
		{
			Title:       "Renovação de contrato",
			Description: "Contrato anual vence no fim do mês.",
			ClientName:  "Oficina Rápida",
			AssignedTo:  "Bruno",
			Column:      "proposta_enviada",
			Value:       12000,
		},
		{
			Title:      "Expansão para filial",
			ClientName: "Mercado Bom Preço",
			AssignedTo: "Ana",
			Column:     "venda_andamento",
			Priority:   "high",
			Value:      27500,
		},
		{
			Title:      "Licenças adicionais",
			ClientName: "Clínica Vida",
			Column:     "venda_concluida",
			Priority:   "low",
			Value:      3600,
		},
		{
			Title:       "Treinamento da equipe",
			Description: "Agendar treinamento _presencial_ após a implantação.",
			ClientName:  "Clínica Vida",
			AssignedTo:  "Bruno",
			Column:      "pos_venda",
		},
	}
}
